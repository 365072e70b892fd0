// Package xeffect extends a markdown habit-tracker table. The table keeps
// one row per date, newest first, with a checkbox cell per tracked habit.
// Each pass tops the table up through a week past the run date, preserving
// the column count.
package xeffect

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yourusername/daybook/internal/note"
	"github.com/yourusername/daybook/internal/schedule"
)

var (
	// ErrNoTable indicates the file contains no recognizable date row.
	ErrNoTable = errors.New("xeffect: no table with a date column found")
	// ErrMalformedTable indicates a date row without any habit columns.
	ErrMalformedTable = errors.New("xeffect: malformed table row")
)

var dateRowRe = regexp.MustCompile(`^\|\s+(\d{4}-\d{2}-\d{2})`)

// CheckboxCell is the empty cell inserted for each habit column.
const CheckboxCell = `  <input type="checkbox"/> `

// Extend inserts rows above the newest date row in the table at path,
// covering every date after it up to a week past today. Dates already
// present are not inserted again, so a daily run is idempotent.
func Extend(path string, today time.Time) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("xeffect: read %s: %w", path, err)
	}
	content := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	rowAt := -1
	var newest time.Time
	columns := 0
	existing := map[string]bool{}
	for i, raw := range content {
		m := dateRowRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		if rowAt == -1 {
			rowAt = i
			// A row must at least close its date cell; an unterminated
			// row would yield a negative habit-cell count below.
			columns = strings.Count(strings.TrimSpace(raw), "|") - 1
			if columns < 1 {
				return fmt.Errorf("%w: %q has no habit columns", ErrMalformedTable, strings.TrimSpace(raw))
			}
			newest, err = time.ParseInLocation(note.NameLayout, m[1], time.UTC)
			if err != nil {
				return fmt.Errorf("xeffect: bad date in table row %q: %w", raw, err)
			}
		}
		existing[m[1]] = true
	}
	if rowAt == -1 {
		return fmt.Errorf("%w: %s", ErrNoTable, path)
	}

	// Cover from the row after the newest through a week past today,
	// inserted newest first so the table stays in reverse order.
	end := schedule.Day(today).AddDate(0, 0, 6)
	var rows []string
	for day := end; day.After(newest); day = day.AddDate(0, 0, -1) {
		text := day.Format(note.NameLayout)
		if existing[text] {
			continue
		}
		rows = append(rows, "| "+text+" "+strings.Repeat("|"+CheckboxCell, columns-1)+"|")
	}
	if len(rows) == 0 {
		return nil
	}

	out := append([]string{}, content[:rowAt]...)
	out = append(out, rows...)
	out = append(out, content[rowAt:]...)
	if err := os.WriteFile(path, []byte(strings.Join(out, "\n")), 0o644); err != nil {
		return fmt.Errorf("xeffect: write %s: %w", path, err)
	}
	return nil
}
