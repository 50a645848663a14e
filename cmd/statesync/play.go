package main

import (
	"github.com/aretw0/statesync"
	"github.com/aretw0/statesync/internal/cli"
	"github.com/aretw0/statesync/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <timeline>",
	Short: "Play a driver timeline and print layer overlays",
	Long: `Loads a timeline (.yaml, .json or .toml), registers one probe state per declared
kind, plays every frame through fresh relays and prints the resulting overlay.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		every, _ := cmd.Flags().GetInt("every")
		strict, _ := cmd.Flags().GetBool("strict")
		banner, _ := cmd.Flags().GetBool("banner")

		out := cmd.OutOrStdout()
		if banner {
			tui.PrintBanner(out, statesync.Version)
		}
		return cli.Play(out, cli.PlayOptions{
			Path:   args[0],
			Every:  every,
			Strict: strict,
			Render: tui.RendererFor(out),
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntP("every", "e", 0, "Print an overlay every N frames (0 prints only the final one)")
	playCmd.Flags().Bool("strict", false, "Fail on unresolved relay names and duplicate kinds")
	playCmd.Flags().Bool("banner", false, "Print the banner before playing")
}
