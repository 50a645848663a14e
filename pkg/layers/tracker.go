// Package layers tracks the current and last state of each parallel layer.
package layers

import (
	"fmt"

	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/state"
)

// Layer is one independently tracked activation track.
// State references are non-owning; nil means none.
type Layer struct {
	Index   int
	Name    string
	Current state.State
	Last    state.State

	// Machine slots are written only by sub-machine relays, so a sub-machine
	// and the states nested inside it can be active on the same layer.
	Machine     state.State
	LastMachine state.State
}

// Tracker holds a fixed number of layers, sized once at construction.
// No field of a layer is written by another layer's calls.
type Tracker struct {
	layers []Layer
}

// New creates a tracker with one layer per name.
func New(names []string) *Tracker {
	t := &Tracker{layers: make([]Layer, len(names))}
	for i, name := range names {
		t.layers[i] = Layer{Index: i, Name: name}
	}
	return t
}

func (t *Tracker) layer(index int) (*Layer, error) {
	if index < 0 || index >= len(t.layers) {
		return nil, fmt.Errorf("%w: %d (layers: %d)", domain.ErrLayerOutOfRange, index, len(t.layers))
	}
	return &t.layers[index], nil
}

// Enter makes s the current state of the layer and starts its activation.
// A layer whose current state has not exited yet rejects the call.
func (t *Tracker) Enter(index int, s state.State) error {
	l, err := t.layer(index)
	if err != nil {
		return err
	}
	if l.Current != nil {
		return fmt.Errorf("%w: layer %d holds %s, entering %s", domain.ErrLayerOccupied, index, l.Current.Kind(), s.Kind())
	}
	l.Current = s
	if err := state.Enter(s); err != nil {
		l.Current = nil
		return fmt.Errorf("enter %s on layer %d: %w", s.Kind(), index, err)
	}
	return nil
}

// Update counts a frame on s. It is not layer indexed: the driver routes
// per-frame ticks through the relay that performed the Enter.
func (t *Tracker) Update(s state.State, delta float64) error {
	if err := state.Update(s, delta); err != nil {
		return fmt.Errorf("update %s: %w", s.Kind(), err)
	}
	return nil
}

// Exit ends the activation of s, which must be current on the layer.
func (t *Tracker) Exit(index int, s state.State) error {
	l, err := t.layer(index)
	if err != nil {
		return err
	}
	if l.Current != s {
		return fmt.Errorf("%w: %s on layer %d", domain.ErrStateMismatch, s.Kind(), index)
	}
	if err := state.Exit(s); err != nil {
		return fmt.Errorf("exit %s on layer %d: %w", s.Kind(), index, err)
	}
	l.Last = s
	l.Current = nil
	return nil
}

// EnterMachine starts a sub-machine activation on the layer.
func (t *Tracker) EnterMachine(index int, s state.State) error {
	l, err := t.layer(index)
	if err != nil {
		return err
	}
	if l.Machine != nil {
		return fmt.Errorf("%w: layer %d runs sub-machine %s, entering %s", domain.ErrLayerOccupied, index, l.Machine.Kind(), s.Kind())
	}
	l.Machine = s
	if err := state.Enter(s); err != nil {
		l.Machine = nil
		return fmt.Errorf("enter sub-machine %s on layer %d: %w", s.Kind(), index, err)
	}
	return nil
}

// ExitMachine ends the sub-machine activation of s on the layer.
func (t *Tracker) ExitMachine(index int, s state.State) error {
	l, err := t.layer(index)
	if err != nil {
		return err
	}
	if l.Machine != s {
		return fmt.Errorf("%w: sub-machine %s on layer %d", domain.ErrStateMismatch, s.Kind(), index)
	}
	if err := state.Exit(s); err != nil {
		return fmt.Errorf("exit sub-machine %s on layer %d: %w", s.Kind(), index, err)
	}
	l.LastMachine = s
	l.Machine = nil
	return nil
}

// Len returns the number of layers.
func (t *Tracker) Len() int {
	return len(t.layers)
}

// Layer returns a copy of the layer at index.
func (t *Tracker) Layer(index int) (Layer, bool) {
	l, err := t.layer(index)
	if err != nil {
		return Layer{}, false
	}
	return *l, true
}

// Current returns the current state of the layer, or nil.
func (t *Tracker) Current(index int) state.State {
	l, err := t.layer(index)
	if err != nil {
		return nil
	}
	return l.Current
}

// Last returns the last exited state of the layer, or nil.
func (t *Tracker) Last(index int) state.State {
	l, err := t.layer(index)
	if err != nil {
		return nil
	}
	return l.Last
}

// CurrentStates returns the non-nil current states in layer order.
// Sub-machines live in the Machine slots and are not included.
func (t *Tracker) CurrentStates() []state.State {
	out := make([]state.State, 0, len(t.layers))
	for _, l := range t.layers {
		if l.Current != nil {
			out = append(out, l.Current)
		}
	}
	return out
}

// LastStates returns the non-nil last states in layer order.
func (t *Tracker) LastStates() []state.State {
	out := make([]state.State, 0, len(t.layers))
	for _, l := range t.layers {
		if l.Last != nil {
			out = append(out, l.Last)
		}
	}
	return out
}

// Views returns a value copy of every layer.
func (t *Tracker) Views() []domain.LayerView {
	out := make([]domain.LayerView, len(t.layers))
	for i, l := range t.layers {
		out[i] = domain.LayerView{
			Index:       l.Index,
			Name:        l.Name,
			Current:     kindOf(l.Current),
			Last:        kindOf(l.Last),
			Machine:     kindOf(l.Machine),
			LastMachine: kindOf(l.LastMachine),
		}
	}
	return out
}

func kindOf(s state.State) domain.Kind {
	if s == nil {
		return ""
	}
	return s.Kind()
}
