// Package config loads the two per-home configuration surfaces: the
// recurring-entry file (config.md, required) and the optional settings file
// (daybook.yaml). It also scaffolds the directory layout a run needs.
//
// config.md is ordinary markdown. Any `#` heading containing "tasks"
// (case-insensitive) opens a task section; inside one, each nonempty line is
// `pattern: template` (or a bare template, meaning every day). Other sections
// are carried along untouched.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/daybook/internal/schedule"
)

// ConfigFile is the recurring-entry configuration file name.
const ConfigFile = "config.md"

var (
	// ErrMissingConfig indicates config.md is absent or unreadable.
	ErrMissingConfig = errors.New("config: missing config file")
	// ErrMalformedConfig indicates a config file that could not be parsed.
	ErrMalformedConfig = errors.New("config: malformed config file")
)

// Entry is one recurring template with its date pattern.
type Entry struct {
	// Pattern is a schedule pattern (weekday, DD, MMDD, YYYYMMDD, or an
	// every-day form). Validated at load time.
	Pattern string
	// Template is the literal text inserted into matching days.
	Template string
}

// Section preserves a non-task section of config.md (heading plus body).
type Section struct {
	Name string
	Body string
}

// Config is the parsed recurring-entry configuration. Immutable during a run.
type Config struct {
	Entries  []Entry
	Sections []Section
}

// Load parses config.md at path. Any failure here is fatal for the run; no
// partial config is ever returned.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingConfig, path, err)
	}
	defer file.Close()

	cfg := &Config{}
	inTasks := false
	sectionName := ""
	var sectionBody []string
	flush := func() {
		if sectionName != "" && !inTasks {
			cfg.Sections = append(cfg.Sections, Section{Name: sectionName, Body: strings.Join(sectionBody, "\n")})
		}
	}

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			flush()
			sectionName = line
			sectionBody = nil
			inTasks = strings.Contains(strings.ToLower(line), "tasks")
			continue
		}
		if !inTasks {
			sectionBody = append(sectionBody, line)
			continue
		}
		entry := parseEntry(line)
		if err := schedule.Validate(entry.Pattern); err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrMalformedConfig, path, lineNo, err)
		}
		cfg.Entries = append(cfg.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	flush()
	return cfg, nil
}

// parseEntry splits `pattern: template`; a line without a colon is an
// every-day template.
func parseEntry(line string) Entry {
	pattern, template, found := strings.Cut(line, ":")
	if !found {
		return Entry{Pattern: "", Template: strings.TrimSpace(line)}
	}
	return Entry{Pattern: strings.TrimSpace(pattern), Template: strings.TrimSpace(template)}
}

// TemplatesFor returns the templates applying to date: every-day entries
// first, then date-specific entries, each group in config order.
func (c *Config) TemplatesFor(date time.Time) ([]string, error) {
	var everyday, specific []string
	for _, entry := range c.Entries {
		if schedule.IsEveryDay(entry.Pattern) {
			everyday = append(everyday, entry.Template)
			continue
		}
		ok, err := schedule.Matches(entry.Pattern, date)
		if err != nil {
			return nil, err
		}
		if ok {
			specific = append(specific, entry.Template)
		}
	}
	return append(everyday, specific...), nil
}

// ResolveHome validates the notes home directory argument.
func ResolveHome(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("config: invalid notes home %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("config: notes home %s is not a directory", abs)
	}
	return abs, nil
}

// EnsureDirs creates the archive, backup and log directories for a home.
func EnsureDirs(home string, settings Settings) error {
	dirs := []string{
		settings.ArchivePath(home),
		settings.BackupPath(home),
		filepath.Join(home, settings.LogDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigPath returns the config.md path for a home.
func ConfigPath(home string) string {
	return filepath.Join(home, ConfigFile)
}
