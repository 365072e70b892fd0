package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/daybook/internal/config"
	"github.com/yourusername/daybook/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [notes-home]",
	Short: "Interactively review and check off outstanding tasks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	home, err := config.ResolveHome(notesHome(args))
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(home)
	if err != nil {
		return err
	}
	return tui.Run(settings.OutstandingPath(home))
}
