package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/daybook/internal/xeffect"
)

var xeffectCmd = &cobra.Command{
	Use:   "xeffect <table-file>",
	Short: "Extend an x-effect habit table with the coming week's rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runXEffect,
}

func runXEffect(cmd *cobra.Command, args []string) error {
	return xeffect.Extend(args[0], time.Now())
}
