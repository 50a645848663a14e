package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/statesync"
	"github.com/aretw0/statesync/internal/logging"
	"github.com/aretw0/statesync/internal/presentation/tui"
	"github.com/aretw0/statesync/pkg/adapters/timeline"
)

// PlayOptions configures an offline timeline playback.
type PlayOptions struct {
	Path string

	// Every prints an overlay after every N frames. Zero prints only the final one.
	Every int

	// Strict fails before playback when a relay name does not resolve,
	// and on duplicate kinds.
	Strict bool

	Render tui.RenderFunc
	Logger *slog.Logger
}

// Play runs a timeline to completion and writes overlays to w.
func Play(w io.Writer, opts PlayOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	tl, err := timeline.Load(opts.Path)
	if err != nil {
		return err
	}

	m, player, err := BuildMachine(tl, logger,
		statesync.WithStrict(opts.Strict),
		statesync.WithLifecycleHooks(createDebugHooks(logger)),
	)
	if err != nil {
		return err
	}
	if opts.Strict {
		if err := m.Validate(tl.Names()...); err != nil {
			return fmt.Errorf("timeline %s: %w", tl.Name, err)
		}
	}

	var overlayErr error
	player.Play(m, func(frame uint64) {
		if opts.Every <= 0 || overlayErr != nil || (frame+1)%uint64(opts.Every) != 0 {
			return
		}
		overlayErr = tui.WriteOverlay(w, m.Snapshot(frame+1), opts.Render)
	})
	if overlayErr != nil {
		return overlayErr
	}

	if opts.Every <= 0 || player.Frame()%uint64(opts.Every) != 0 {
		if err := tui.WriteOverlay(w, m.Snapshot(player.Frame()), opts.Render); err != nil {
			return err
		}
	}
	printSystemMessage(w, "Played %d frames of '%s'.", player.Frame(), tl.Name)
	return nil
}
