package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/statesync"
	"github.com/aretw0/statesync/pkg/adapters/timeline"
	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/state"
)

// Probe is the state object the CLI registers for every kind a timeline
// declares. It has no behavior of its own; overlays read its timing.
type Probe struct {
	state.Base
	kind domain.Kind
}

// NewProbe creates a probe reporting kind.
func NewProbe(kind string) *Probe {
	return &Probe{kind: domain.Kind(kind)}
}

// Kind implements state.State.
func (p *Probe) Kind() domain.Kind { return p.kind }

// BuildMachine creates an active machine driven by a player over tl, with
// one Probe per declared state.
func BuildMachine(tl *timeline.Timeline, logger *slog.Logger, opts ...statesync.Option) (*statesync.Machine, *timeline.Player, error) {
	player := timeline.NewPlayer(tl)

	machineOpts := []statesync.Option{
		statesync.WithName(tl.Name),
		statesync.WithLogger(logger),
	}
	machineOpts = append(machineOpts, opts...)
	m := statesync.New(player, machineOpts...)

	for _, name := range tl.States {
		if err := m.Add(NewProbe(name)); err != nil {
			return nil, nil, err
		}
	}
	if err := m.Activate(); err != nil {
		return nil, nil, fmt.Errorf("error activating machine: %w", err)
	}
	return m, player, nil
}
