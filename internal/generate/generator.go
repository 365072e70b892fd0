// Package generate creates note files for upcoming days, seeded with the
// recurring entries that match each date plus a snapshot count of
// outstanding tasks. Re-running against an existing file never duplicates
// entries; only the snapshot line is refreshed.
package generate

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/daybook/internal/config"
	"github.com/yourusername/daybook/internal/logbook"
	"github.com/yourusername/daybook/internal/note"
	"github.com/yourusername/daybook/internal/outstanding"
	"github.com/yourusername/daybook/internal/schedule"
)

// SummaryPrefix introduces the outstanding-task snapshot line in every
// generated note.
const SummaryPrefix = "Outstanding tasks: "

// Result summarizes one generation pass.
type Result struct {
	Created []string
	Updated []string
	// Outstanding is the snapshot count reported in every touched file.
	Outstanding int
}

// Generator populates note files for the days after today.
type Generator struct {
	home     string
	cfg      *config.Config
	settings config.Settings
	log      *logbook.Logbook
}

// New builds a Generator. The log may be nil in tests.
func New(home string, cfg *config.Config, settings config.Settings, log *logbook.Logbook) *Generator {
	return &Generator{home: home, cfg: cfg, settings: settings, log: log}
}

// Run generates the notes for today+1 … today+horizon.
func (g *Generator) Run(today time.Time) (Result, error) {
	var result Result
	count, err := outstanding.Count(g.settings.OutstandingPath(g.home))
	if err != nil {
		return result, err
	}
	result.Outstanding = count

	window := schedule.Window(schedule.Day(today).AddDate(0, 0, 1), g.settings.Horizon)
	for _, date := range window {
		templates, err := g.cfg.TemplatesFor(date)
		if err != nil {
			return result, err
		}
		name := note.Name(date)
		path := note.Path(g.home, name)
		data, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			changed, err := g.update(path, string(data), templates, count)
			if err != nil {
				return result, err
			}
			if changed {
				result.Updated = append(result.Updated, name)
				g.log.Info("generate: refreshed %s", name)
			}
		case os.IsNotExist(readErr):
			if err := g.create(path, date, templates, count); err != nil {
				return result, err
			}
			result.Created = append(result.Created, name)
			g.log.Info("generate: created %s with %d entries", name, len(templates))
		default:
			return result, fmt.Errorf("generate: read %s: %w", path, readErr)
		}
	}
	return result, nil
}

func (g *Generator) create(path string, date time.Time, templates []string, count int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", date.Format(note.NameLayout), date.Weekday())
	for _, template := range templates {
		b.WriteString(note.FormatOpenTask(template) + "\n")
	}
	b.WriteString("\n" + summaryLine(count) + "\n")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("generate: write %s: %w", path, err)
	}
	return nil
}

// update appends entries missing from an existing note and refreshes its
// snapshot line. An entry counts as present when its task text already
// appears, open or checked off.
func (g *Generator) update(path, content string, templates []string, count int) (bool, error) {
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(content, "\r\n", "\n"), "\n"), "\n")
	present := map[string]bool{}
	summaryAt := -1
	for i, raw := range lines {
		if strings.HasPrefix(strings.TrimSpace(raw), SummaryPrefix) {
			summaryAt = i
			continue
		}
		line := note.Classify(raw)
		if line.Kind == note.LineTaskOpen || line.Kind == note.LineTaskDone {
			present[line.Task] = true
		}
	}

	var missing []string
	for _, template := range templates {
		if !present[template] {
			missing = append(missing, note.FormatOpenTask(template))
		}
	}

	changed := len(missing) > 0
	summary := summaryLine(count)
	if summaryAt >= 0 {
		if strings.TrimSpace(lines[summaryAt]) != summary {
			lines[summaryAt] = summary
			changed = true
		}
		lines = append(lines[:summaryAt], append(missing, lines[summaryAt:]...)...)
	} else {
		lines = append(lines, missing...)
		lines = append(lines, summary)
		changed = true
	}
	if !changed {
		return false, nil
	}
	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return false, fmt.Errorf("generate: write %s: %w", path, err)
	}
	return true, nil
}

func summaryLine(count int) string {
	return SummaryPrefix + strconv.Itoa(count)
}
