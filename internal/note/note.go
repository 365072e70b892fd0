// Package note handles the on-disk shape of daily note files: the
// YYYY-MM-DD.md naming convention, line classification, and the frontmatter
// stamp written onto archived copies.
package note

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// NameLayout is the date layout embedded in note file names. Names built
// from it sort lexically in chronological order.
const NameLayout = "2006-01-02"

// ErrNotNote indicates a file name that is not a dated note.
var ErrNotNote = errors.New("note: not a dated note file")

var nameRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.md$`)

// Name returns the note file name for a date.
func Name(date time.Time) string {
	return date.Format(NameLayout) + ".md"
}

// IsNoteName reports whether name follows the dated note convention.
func IsNoteName(name string) bool {
	return nameRe.MatchString(name)
}

// ParseName extracts the date from a note file name.
func ParseName(name string) (time.Time, error) {
	if !IsNoteName(name) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotNote, name)
	}
	date, err := time.ParseInLocation(NameLayout, name[:len(name)-len(".md")], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrNotNote, name, err)
	}
	return date, nil
}

// List returns the dated note file names in dir, oldest first. Non-note
// entries (config, outstanding file, subdirectories) are ignored.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("note: list %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsNoteName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Path joins a notes directory with a note name.
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}
