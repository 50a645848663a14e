package statesync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/statesync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Frames(t *testing.T) {
	r := &statesync.Runner{Tick: time.Millisecond, Frames: 5}

	var stepped, after []uint64
	var deltas []float64
	r.After = func(frame uint64) { after = append(after, frame) }

	err := r.Run(context.Background(), func(frame uint64, delta float64) error {
		stepped = append(stepped, frame)
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2, 3, 4}, stepped)
	assert.Equal(t, stepped, after)
	for _, d := range deltas {
		assert.InDelta(t, 0.001, d, 1e-12)
	}
}

func TestRunner_StopsOnError(t *testing.T) {
	r := &statesync.Runner{Tick: time.Millisecond}
	boom := errors.New("boom")

	err := r.Run(context.Background(), func(frame uint64, _ float64) error {
		if frame == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "frame 2")
}

func TestRunner_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &statesync.Runner{Tick: time.Millisecond}

	err := r.Run(ctx, func(frame uint64, _ float64) error {
		if frame == 3 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Defaults(t *testing.T) {
	r := statesync.NewRunner()
	assert.Equal(t, 16667*time.Microsecond, r.Tick)
	assert.Error(t, r.Run(context.Background(), nil))
}
