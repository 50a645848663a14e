package main

import (
	"fmt"

	"github.com/aretw0/statesync/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <timeline>",
	Short: "Check a timeline for consistency",
	Long:  `Parses the timeline and reports malformed events, duplicate kinds and relay names that do not resolve.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, err := cli.Validate(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Timeline '%s' is valid! ✅ (%d layers, %d events)\n", tl.Name, len(tl.Layers), len(tl.Events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
