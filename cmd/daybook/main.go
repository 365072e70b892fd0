// cmd/daybook/main.go
//
// Entry point for the daybook CLI. Running `daybook` with no arguments
// performs the daily rollover against the current directory; a notes home
// can be given as the single positional argument. Intended to be invoked
// once per day by a scheduler.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/daybook/internal/runner"
)

var rootCmd = &cobra.Command{
	Use:   "daybook [notes-home]",
	Short: "Daily note rollover for a plain-markdown knowledge base",
	Long: `Daybook archives yesterday's (and older) note files, carries their
incomplete tasks into an outstanding-tasks file, and generates the coming
week's notes pre-filled with recurring entries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRollover,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(xeffectCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [notes-home]",
	Short: "Run the daily rollover (the default command)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRollover,
}

func runRollover(cmd *cobra.Command, args []string) error {
	home := notesHome(args)
	if _, err := runner.Run(home, time.Now(), cmd.OutOrStdout()); err != nil {
		return err
	}
	return nil
}

// notesHome returns the positional home argument, defaulting to cwd.
func notesHome(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
