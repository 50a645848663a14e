package state

// Timing accumulates frames and seconds over one activation.
type Timing struct {
	Frames  uint64
	Seconds float64
}

// Reset zeroes both counters.
func (t *Timing) Reset() {
	t.Frames = 0
	t.Seconds = 0
}

// Tick counts one frame of length delta.
func (t *Timing) Tick(delta float64) {
	t.Frames++
	t.Seconds += delta
}
