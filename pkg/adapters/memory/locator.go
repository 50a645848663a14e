package memory

import (
	"github.com/aretw0/statesync/pkg/state"
)

// Locator implements ports.Locator over a fixed list of state objects.
type Locator struct {
	states []state.State
}

// NewLocator creates a locator over states, kept in the given order.
func NewLocator(states ...state.State) *Locator {
	return &Locator{states: append([]state.State(nil), states...)}
}

// States returns the located states in order.
func (l *Locator) States() []state.State {
	return append([]state.State(nil), l.states...)
}

// Locate returns the first state whose kind matches name ignoring case.
func (l *Locator) Locate(name string) (state.State, bool) {
	for _, s := range l.states {
		if s.Kind().Matches(name) {
			return s, true
		}
	}
	return nil, false
}
