package relay

import (
	"log/slog"

	"github.com/aretw0/statesync/pkg/state"
)

// Host is the synchronization core a relay forwards to.
type Host interface {
	// Resolve returns the state registered under name, ignoring case.
	Resolve(name string) (state.State, error)

	EnterState(layer int, s state.State) error
	UpdateState(layer int, s state.State, delta float64) error
	ExitState(layer int, s state.State) error

	EnterMachine(layer int, s state.State) error
	ExitMachine(layer int, s state.State) error

	Logger() *slog.Logger
}
