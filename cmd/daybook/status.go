package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/daybook/internal/config"
	"github.com/yourusername/daybook/internal/logbook"
	"github.com/yourusername/daybook/internal/note"
	"github.com/yourusername/daybook/internal/outstanding"
	"github.com/yourusername/daybook/internal/schedule"
)

var statusCmd = &cobra.Command{
	Use:   "status [notes-home]",
	Short: "Show pending archives, horizon coverage and recent log entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	home, err := config.ResolveHome(notesHome(args))
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(home)
	if err != nil {
		return err
	}
	today := schedule.Day(time.Now())
	out := cmd.OutOrStdout()

	names, err := note.List(home)
	if err != nil {
		return err
	}
	pending := 0
	covered := map[string]bool{}
	for _, name := range names {
		date, err := note.ParseName(name)
		if err != nil {
			continue
		}
		if date.Before(today) {
			pending++
		}
		covered[name] = true
	}

	count, err := outstanding.Count(settings.OutstandingPath(home))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "notes home:\t%s\n", home)
	fmt.Fprintf(w, "awaiting archive:\t%d\n", pending)
	fmt.Fprintf(w, "outstanding tasks:\t%d\n", count)
	missing := 0
	for _, date := range schedule.Window(today.AddDate(0, 0, 1), settings.Horizon) {
		if !covered[note.Name(date)] {
			missing++
		}
	}
	fmt.Fprintf(w, "upcoming notes missing:\t%d of %d\n", missing, settings.Horizon)
	w.Flush()

	if _, err := os.Stat(settings.LogPath(home)); err == nil {
		book, err := logbook.New(settings.LogPath(home))
		if err != nil {
			return err
		}
		lines, total := book.Tail(5)
		if total > 0 {
			fmt.Fprintf(out, "\nrecent log entries (%d total):\n", total)
			for _, line := range lines {
				fmt.Fprintf(out, "  %s\n", line)
			}
		}
	}
	return nil
}
