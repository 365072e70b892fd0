// Package runner sequences a full daily pass: load configuration, scaffold
// the home directory, archive past notes, generate upcoming notes, and top
// up the x-effect table when one is configured. Strictly linear; the whole
// run operates on a handful of small text files.
package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/daybook/internal/archive"
	"github.com/yourusername/daybook/internal/config"
	"github.com/yourusername/daybook/internal/generate"
	"github.com/yourusername/daybook/internal/logbook"
	"github.com/yourusername/daybook/internal/xeffect"
)

// Summary reports what one run did.
type Summary struct {
	RunID    string
	Archive  archive.Result
	Generate generate.Result
	XEffect  bool
}

// Run executes a full daily pass against the notes home. Config errors and
// filesystem errors abort the run; individual unparseable notes are only
// warnings, reported through the returned summary. The caller supplies
// today so runs are reproducible in tests.
func Run(home string, today time.Time, out io.Writer) (Summary, error) {
	var summary Summary

	home, err := config.ResolveHome(home)
	if err != nil {
		return summary, err
	}
	settings, err := config.LoadSettings(home)
	if err != nil {
		return summary, err
	}
	cfg, err := config.Load(config.ConfigPath(home))
	if err != nil {
		return summary, err
	}
	if err := config.EnsureDirs(home, settings); err != nil {
		return summary, err
	}

	log, err := logbook.New(settings.LogPath(home))
	if err != nil {
		return summary, err
	}
	summary.RunID = uuid.NewString()
	log.Info("run %s started for %s", summary.RunID, today.Format("2006-01-02"))

	archiveResult, err := archive.New(home, settings, log, summary.RunID).Run(today)
	if err != nil {
		log.Error("run %s: archive failed: %v", summary.RunID, err)
		return summary, err
	}
	summary.Archive = archiveResult

	generateResult, err := generate.New(home, cfg, settings, log).Run(today)
	if err != nil {
		log.Error("run %s: generate failed: %v", summary.RunID, err)
		return summary, err
	}
	summary.Generate = generateResult

	if path := settings.XEffectPath(home); path != "" {
		if err := xeffect.Extend(path, today); err != nil {
			// The habit table is a side feature; a bad table should not
			// undo an otherwise complete rollover.
			log.Warn("run %s: x-effect: %v", summary.RunID, err)
		} else {
			summary.XEffect = true
		}
	}

	log.Info("run %s finished: %d archived, %d skipped, %d created, %d updated",
		summary.RunID, len(summary.Archive.Archived), len(summary.Archive.Skipped),
		len(summary.Generate.Created), len(summary.Generate.Updated))
	report(out, summary)
	return summary, nil
}

func report(out io.Writer, s Summary) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, "archived %d note(s), skipped %d\n", len(s.Archive.Archived), len(s.Archive.Skipped))
	for _, skip := range s.Archive.Skipped {
		fmt.Fprintf(out, "  warning: %s left unarchived: %s\n", skip.Name, skip.Reason)
	}
	fmt.Fprintf(out, "generated %d note(s), refreshed %d\n", len(s.Generate.Created), len(s.Generate.Updated))
	fmt.Fprintf(out, "outstanding tasks: %d\n", s.Generate.Outstanding)
	if s.XEffect {
		fmt.Fprintln(out, "x-effect table extended")
	}
}
