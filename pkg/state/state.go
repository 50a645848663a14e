package state

import (
	"github.com/aretw0/statesync/pkg/domain"
)

// Owner is the synchronization core a state belongs to.
// States hold it as a non-owning back-reference.
type Owner interface {
	Active() bool
}

// Listener receives a state notification.
type Listener func(State)

// State is a persistent state object driven by the synchronization core.
// Implementations embed Base, which seals the interface.
type State interface {
	Kind() domain.Kind

	OnEnter()
	OnUpdate()
	OnExit()

	base() *Base
}

// Base carries the bookkeeping shared by every state: the execution flag,
// the activation timing, the owner reference and the notification listeners.
// The zero value is ready to use.
type Base struct {
	owner     Owner
	disabled  bool
	executing bool
	timing    Timing

	entered []Listener
	updated []Listener
	exited  []Listener
}

func (b *Base) base() *Base { return b }

// OnEnter runs when an activation starts. Override it in concrete states.
func (b *Base) OnEnter() {}

// OnUpdate runs once per frame while executing. Override it in concrete states.
func (b *Base) OnUpdate() {}

// OnExit runs when an activation ends. Override it in concrete states.
func (b *Base) OnExit() {}

// Owner returns the machine this state is attached to, or nil.
func (b *Base) Owner() Owner { return b.owner }

// Enabled reports whether the owner is active and the state is not switched off.
func (b *Base) Enabled() bool {
	return b.owner != nil && b.owner.Active() && !b.disabled
}

// SetEnabled toggles the explicit switch that feeds Enabled.
func (b *Base) SetEnabled(enabled bool) { b.disabled = !enabled }

// Executing reports whether the state is between Enter and Exit.
func (b *Base) Executing() bool { return b.executing }

// TotalFrames returns the frames counted since the last Enter.
func (b *Base) TotalFrames() uint64 { return b.timing.Frames }

// TotalSeconds returns the seconds accumulated since the last Enter.
func (b *Base) TotalSeconds() float64 { return b.timing.Seconds }

// OnEntered subscribes fn to the "entered" notification.
func (b *Base) OnEntered(fn Listener) { b.entered = append(b.entered, fn) }

// OnUpdated subscribes fn to the "updated" notification.
func (b *Base) OnUpdated(fn Listener) { b.updated = append(b.updated, fn) }

// OnExited subscribes fn to the "exited" notification.
func (b *Base) OnExited(fn Listener) { b.exited = append(b.exited, fn) }

// Attach sets the owner back-reference of s.
func Attach(s State, owner Owner) {
	s.base().owner = owner
}

// Enter starts an activation: timing reset, OnEnter, then "entered".
func Enter(s State) error {
	b := s.base()
	if b.executing {
		return domain.ErrAlreadyExecuting
	}
	b.executing = true
	b.timing.Reset()
	s.OnEnter()
	notify(s, b.entered)
	return nil
}

// Update counts one frame of delta seconds, runs OnUpdate, then "updated".
// Idle states are left untouched.
func Update(s State, delta float64) error {
	b := s.base()
	if !b.executing {
		return domain.ErrNotExecuting
	}
	b.timing.Tick(delta)
	s.OnUpdate()
	notify(s, b.updated)
	return nil
}

// Exit ends an activation: timing reset, OnExit, then "exited".
func Exit(s State) error {
	b := s.base()
	if !b.executing {
		return domain.ErrNotExecuting
	}
	b.executing = false
	b.timing.Reset()
	s.OnExit()
	notify(s, b.exited)
	return nil
}

// View returns a read-only copy of the state's status.
func View(s State) domain.StateView {
	b := s.base()
	return domain.StateView{
		Kind:      s.Kind(),
		Enabled:   b.Enabled(),
		Executing: b.executing,
		Frames:    b.timing.Frames,
		Seconds:   b.timing.Seconds,
	}
}

func notify(s State, listeners []Listener) {
	for _, fn := range listeners {
		fn(s)
	}
}
