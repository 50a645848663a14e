package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/statesync"
	httpAdapter "github.com/aretw0/statesync/pkg/adapters/http"
	"github.com/aretw0/statesync/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/statesync/pkg/adapters/redis"
	"github.com/aretw0/statesync/pkg/adapters/timeline"
	"github.com/aretw0/statesync/pkg/observability"
	"github.com/aretw0/statesync/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var errPlaybackDone = errors.New("playback finished")

// ServeOptions configures the overlay server.
type ServeOptions struct {
	Path string
	Addr string

	// RedisAddr publishes snapshots to Redis instead of process memory.
	RedisAddr   string
	RedisPrefix string

	FPS  int
	Loop bool

	Logger *slog.Logger
	Output io.Writer
}

// Serve plays a timeline in real time and exposes its snapshots, metrics
// and health over HTTP until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	tl, err := timeline.Load(opts.Path)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}
	tracer := observability.NewTracer(nil)

	m, player, err := BuildMachine(tl, logger,
		statesync.WithLifecycleHooks(metrics.Hooks()),
		statesync.WithLifecycleHooks(tracer.Hooks()),
		statesync.WithLifecycleHooks(createDebugHooks(logger)),
	)
	if err != nil {
		return err
	}

	store, closeStore := openStore(opts)
	defer closeStore()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           httpAdapter.NewHandler(store, httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving overlays for '%s' on %s", tl.Name, srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	runner := &statesync.Runner{Tick: time.Second / time.Duration(opts.FPS)}
	playCtx, stopPlayback := context.WithCancel(ctx)
	defer stopPlayback()
	playErrors := make(chan error, 1)
	go func() {
		playErrors <- playback(playCtx, runner, m, player, store, opts.Loop)
	}()

	var runErr error
	playing := true
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case err := <-playErrors:
		playing = false
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = err
		} else {
			printSystemMessage(out, "Playback finished after %d frames; overlays stay up.", player.Frame())
			<-ctx.Done()
		}
	case <-ctx.Done():
	}

	// Playback must stop before the deferred store close.
	stopPlayback()
	if playing {
		<-playErrors
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown did not complete", "err", err)
		_ = srv.Close()
	}
	printSystemMessage(out, "Overlay server stopped.")
	return runErr
}

var openStore = func(opts ServeOptions) (ports.OverlayStore, func()) {
	if opts.RedisAddr == "" {
		return memory.NewStore(), func() {}
	}
	var storeOpts []redisAdapter.Option
	if opts.RedisPrefix != "" {
		storeOpts = append(storeOpts, redisAdapter.WithPrefix(opts.RedisPrefix))
	}
	store := redisAdapter.New(opts.RedisAddr, "", 0, storeOpts...)
	return store, func() { _ = store.Close() }
}

// playback steps the player once per runner tick and publishes a snapshot
// after every frame. It returns nil when a non-looping timeline ends.
func playback(ctx context.Context, runner *statesync.Runner, m *statesync.Machine, player *timeline.Player, store ports.OverlayStore, loop bool) error {
	err := runner.Run(ctx, func(_ uint64, _ float64) error {
		if player.Done() {
			if !loop {
				return errPlaybackDone
			}
			player.Rewind(m)
		}
		player.Step(m)
		return store.Publish(ctx, m.Snapshot(player.Frame()))
	})
	if errors.Is(err, errPlaybackDone) {
		return nil
	}
	return err
}
