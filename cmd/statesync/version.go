package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/statesync"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of statesync",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "statesync version %s\n", strings.TrimSpace(statesync.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
