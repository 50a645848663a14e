package statesync

import (
	"context"
	"fmt"
	"time"
)

// StepFunc advances the driven world by one frame of delta seconds.
type StepFunc func(frame uint64, delta float64) error

// Runner calls a StepFunc at a fixed tick rate, the way a game loop would
// drive the external engine. It is a convenience for hosts and tools; the
// Machine itself never schedules anything.
type Runner struct {
	// Tick is the wall-clock interval between frames (default: 60 FPS).
	Tick time.Duration

	// Frames stops the loop after that many frames. Zero runs until ctx ends.
	Frames uint64

	// After runs on the loop goroutine once each frame has been stepped.
	After func(frame uint64)
}

// NewRunner creates a Runner ticking at 60 frames per second.
func NewRunner() *Runner {
	return &Runner{
		Tick: 16667 * time.Microsecond,
	}
}

// Run executes step once per tick until ctx is done, Frames is reached or
// step fails. The delta passed to step is the fixed tick length.
func (r *Runner) Run(ctx context.Context, step StepFunc) error {
	if step == nil {
		return fmt.Errorf("step function must be set")
	}
	tick := r.Tick
	if tick <= 0 {
		tick = 16667 * time.Microsecond
	}
	delta := tick.Seconds()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var frame uint64
	for {
		if r.Frames > 0 && frame >= r.Frames {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := step(frame, delta); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if r.After != nil {
			r.After(frame)
		}
		frame++
	}
}
