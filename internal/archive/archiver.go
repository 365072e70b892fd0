// Package archive rolls past-dated note files out of the notes home. Each
// eligible note has its incomplete tasks extracted into the outstanding file,
// its ephemeral lines stripped, a stamped copy written to the archive
// directory, and the original moved to the backup directory so a repeat run
// never sees it again.
package archive

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yourusername/daybook/internal/config"
	"github.com/yourusername/daybook/internal/logbook"
	"github.com/yourusername/daybook/internal/note"
	"github.com/yourusername/daybook/internal/outstanding"
)

// Skip records a note that was left unarchived and why. Skipped notes stay
// in place and are retried on the next run.
type Skip struct {
	Name   string
	Reason string
}

// Result summarizes one archiving pass. Every past-dated note lands in
// exactly one of Archived or Skipped; nothing is silently dropped.
type Result struct {
	Archived   []string
	Skipped    []Skip
	TasksAdded int
}

// Archiver processes past-dated notes within a single notes home.
type Archiver struct {
	home     string
	settings config.Settings
	log      *logbook.Logbook
	runID    string
	now      func() time.Time
}

// New builds an Archiver. The log may be nil in tests.
func New(home string, settings config.Settings, log *logbook.Logbook, runID string) *Archiver {
	return &Archiver{home: home, settings: settings, log: log, runID: runID, now: time.Now}
}

// WithClock overrides the clock used for archive stamps.
func (a *Archiver) WithClock(clock func() time.Time) *Archiver {
	a.now = clock
	return a
}

// Run archives every note dated strictly before today, oldest first.
// Completed tasks are retained in the archived copy; the archive is a
// historical record. Filesystem failures writing a copy or moving an
// original are fatal; unreadable notes are skipped with a warning.
func (a *Archiver) Run(today time.Time) (Result, error) {
	var result Result
	names, err := note.List(a.home)
	if err != nil {
		return result, err
	}

	tasksFile, err := outstanding.Load(a.settings.OutstandingPath(a.home))
	if err != nil {
		return result, err
	}

	cutoff := note.Name(today)
	for _, name := range names {
		if name >= cutoff {
			continue
		}
		open, archivedBody, skip := a.prepare(name)
		if skip != nil {
			a.log.Warn("archive: skipping %s: %s", name, skip.Reason)
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		stamp := note.ArchiveStamp{
			Note:       strings.TrimSuffix(name, ".md"),
			ArchivedAt: a.now(),
			Run:        a.runID,
			OpenTasks:  len(open),
		}
		content, err := note.WriteStamp(stamp, archivedBody)
		if err != nil {
			return result, err
		}
		archivePath := note.Path(a.settings.ArchivePath(a.home), name)
		if err := os.WriteFile(archivePath, content, 0o644); err != nil {
			return result, fmt.Errorf("archive: write %s: %w", archivePath, err)
		}
		// Persist the extracted tasks before the note leaves the home, so
		// an interrupted run never strands them. The rename is the final,
		// commit-like step per file; if it fails the note is retried next
		// run and Append deduplicates.
		if added := tasksFile.Append(open); added > 0 {
			if err := tasksFile.Save(); err != nil {
				return result, err
			}
			result.TasksAdded += added
		}
		backupPath := note.Path(a.settings.BackupPath(a.home), name)
		if err := os.Rename(note.Path(a.home, name), backupPath); err != nil {
			return result, fmt.Errorf("archive: move %s to %s: %w", name, backupPath, err)
		}
		result.Archived = append(result.Archived, name)
		a.log.Info("archive: %s archived, %d open tasks", name, len(open))
	}
	return result, nil
}

// prepare reads and filters one note. It returns the open task texts in
// file order and the archived body with ephemeral lines removed. A non-nil
// Skip means the note could not be parsed and must be left in place.
func (a *Archiver) prepare(name string) (open []string, body []byte, skip *Skip) {
	data, err := os.ReadFile(note.Path(a.home, name))
	if err != nil {
		return nil, nil, &Skip{Name: name, Reason: err.Error()}
	}
	if !utf8.Valid(data) {
		return nil, nil, &Skip{Name: name, Reason: "not valid UTF-8"}
	}
	if note.HasStamp(data) {
		return nil, nil, &Skip{Name: name, Reason: "already carries an archive stamp"}
	}

	var kept []string
	seen := map[string]bool{}
	for _, raw := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		line := note.Classify(raw)
		if line.Kind == note.LineEphemeral {
			continue
		}
		kept = append(kept, raw)
		if line.Kind == note.LineTaskOpen && !seen[line.Task] {
			seen[line.Task] = true
			open = append(open, line.Task)
		}
	}
	return open, []byte(strings.Join(kept, "\n")), nil
}
