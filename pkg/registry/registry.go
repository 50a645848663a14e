// Package registry maps state kinds to the live state objects that implement them.
package registry

import (
	"errors"
	"fmt"

	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/state"
)

// Registry manages the registered states.
// It is built once by the owning machine and is not safe for concurrent writes.
type Registry struct {
	states map[domain.Kind]state.State
	order  []domain.Kind
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		states: make(map[domain.Kind]state.State),
	}
}

// Register adds a state under its kind.
// If the kind is already registered, the existing entry is kept and
// domain.ErrDuplicateKind is returned.
func (r *Registry) Register(s state.State) error {
	kind := s.Kind()
	if kind.IsZero() {
		return fmt.Errorf("%w: %T reports an empty kind", domain.ErrInvalidKind, s)
	}
	if _, exists := r.states[kind]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKind, kind)
	}
	r.states[kind] = s
	r.order = append(r.order, kind)
	return nil
}

// Lookup returns the state registered for kind.
func (r *Registry) Lookup(kind domain.Kind) (state.State, bool) {
	s, ok := r.states[kind]
	return s, ok
}

// LookupByName returns the first state, in registration order, whose kind
// matches name ignoring case. Kinds that only differ by case share a name;
// the first registered one wins.
func (r *Registry) LookupByName(name string) (state.State, bool) {
	for _, kind := range r.order {
		if kind.Matches(name) {
			return r.states[kind], true
		}
	}
	return nil, false
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []domain.Kind {
	out := make([]domain.Kind, len(r.order))
	copy(out, r.order)
	return out
}

// States returns the registered states in registration order.
func (r *Registry) States() []state.State {
	out := make([]state.State, 0, len(r.order))
	for _, kind := range r.order {
		out = append(out, r.states[kind])
	}
	return out
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.order)
}

// Validate checks that every name resolves.
// It returns one joined error listing each name that does not.
func (r *Registry) Validate(names ...string) error {
	var errs []error
	for _, name := range names {
		if _, ok := r.LookupByName(name); !ok {
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrUnresolvedName, name))
		}
	}
	return errors.Join(errs...)
}
