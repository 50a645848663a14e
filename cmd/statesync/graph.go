package main

import (
	"fmt"

	"github.com/aretw0/statesync/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <timeline>",
	Short: "Export the layer graph visualization",
	Long: `Outputs a Mermaid diagram (graph LR) with one subgraph per layer and the transitions
the timeline performs. With --at, the layers are highlighted as they stand after that frame.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetInt("at")

		output, err := cli.Graph(args[0], at)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("at", -1, "Overlay current and last states after this frame")
}
