package main

import (
	"context"

	"github.com/aretw0/statesync/internal/cli"
	"github.com/aretw0/statesync/internal/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <timeline>",
	Short: "Play a timeline in real time and serve its overlays over HTTP",
	Long: `Steps the timeline at a fixed frame rate, publishes a snapshot after every frame
and exposes snapshots, Prometheus metrics and health over HTTP. Snapshots go to
Redis when --redis (or STATESYNC_REDIS_ADDR) is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{
			Path:        args[0],
			Addr:        cfg.HTTPAddr,
			RedisAddr:   cfg.RedisAddr,
			RedisPrefix: cfg.RedisPrefix,
			FPS:         cfg.FPS,
			Logger:      logger,
			Output:      cmd.OutOrStdout(),
		}
		if cmd.Flags().Changed("addr") {
			opts.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis") {
			opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		}
		if cmd.Flags().Changed("fps") {
			opts.FPS, _ = cmd.Flags().GetInt("fps")
		}
		opts.Loop, _ = cmd.Flags().GetBool("loop")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		shutdown, err := telemetry.Setup(ctx, "statesync")
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("tracer shutdown failed", "err", err)
			}
		}()

		if err := cli.Serve(ctx, opts); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Info("stopped by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on; overrides STATESYNC_HTTP_ADDR")
	serveCmd.Flags().String("redis", "", "Redis address for snapshots; overrides STATESYNC_REDIS_ADDR")
	serveCmd.Flags().Int("fps", 60, "Frames per second; overrides STATESYNC_FPS")
	serveCmd.Flags().Bool("loop", false, "Restart the timeline when it ends")
}
