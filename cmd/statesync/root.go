package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/statesync/internal/config"
	"github.com/aretw0/statesync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "statesync",
	Short: "statesync keeps persistent state objects in step with a frame-driven state machine",
	Long: `statesync plays scripted driver timelines against a synchronization core,
prints layer overlays and serves them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// Flags override the environment
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("log-json") {
			cfg.LogJSON, _ = cmd.Flags().GetBool("log-json")
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = logging.NewWithWriter(os.Stderr, level, cfg.LogJSON)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error); overrides STATESYNC_LOG_LEVEL")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON; overrides STATESYNC_LOG_JSON")
}
