package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the optional per-home settings file.
const SettingsFile = "daybook.yaml"

// Settings controls file layout and generation behavior for a notes home.
// Every field has a default; the settings file only needs to name overrides.
type Settings struct {
	// ArchiveDir receives filtered, stamped copies of archived notes.
	ArchiveDir string `yaml:"archive_dir"`
	// BackupDir receives the verbatim originals after archiving.
	BackupDir string `yaml:"backup_dir"`
	// LogDir holds the run log.
	LogDir string `yaml:"log_dir"`
	// OutstandingFile accumulates incomplete tasks across archived days.
	OutstandingFile string `yaml:"outstanding_file"`
	// Horizon is how many upcoming days get note files generated.
	Horizon int `yaml:"horizon"`
	// XEffectFile, when set, names a habit-tracker table to extend each run.
	// Relative paths resolve against the notes home.
	XEffectFile string `yaml:"x_effect_file"`
}

// DefaultSettings mirrors the layout of the original tool.
func DefaultSettings() Settings {
	return Settings{
		ArchiveDir:      "archive",
		BackupDir:       "backup",
		LogDir:          "logs",
		OutstandingFile: "outstanding.md",
		Horizon:         7,
	}
}

// LoadSettings reads daybook.yaml from the notes home, falling back to
// defaults when the file is absent. A malformed file is a fatal config error.
func LoadSettings(home string) (Settings, error) {
	settings := DefaultSettings()
	path := filepath.Join(home, SettingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	return settings, nil
}

func (s Settings) validate() error {
	if s.ArchiveDir == "" || s.BackupDir == "" || s.LogDir == "" {
		return errors.New("archive_dir, backup_dir and log_dir must not be empty")
	}
	if s.OutstandingFile == "" {
		return errors.New("outstanding_file must not be empty")
	}
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", s.Horizon)
	}
	return nil
}

// ArchivePath returns the archive directory under the notes home.
func (s Settings) ArchivePath(home string) string { return filepath.Join(home, s.ArchiveDir) }

// BackupPath returns the backup directory under the notes home.
func (s Settings) BackupPath(home string) string { return filepath.Join(home, s.BackupDir) }

// LogPath returns the run log file path under the notes home.
func (s Settings) LogPath(home string) string {
	return filepath.Join(home, s.LogDir, "daybook.log")
}

// OutstandingPath returns the outstanding-tasks file path.
func (s Settings) OutstandingPath(home string) string {
	return filepath.Join(home, s.OutstandingFile)
}

// XEffectPath resolves the x-effect file against the notes home. Empty when
// the feature is disabled.
func (s Settings) XEffectPath(home string) string {
	if s.XEffectFile == "" {
		return ""
	}
	if filepath.IsAbs(s.XEffectFile) {
		return s.XEffectFile
	}
	return filepath.Join(home, s.XEffectFile)
}
