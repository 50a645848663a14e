package cli

import (
	"fmt"

	"github.com/aretw0/statesync"
	"github.com/aretw0/statesync/internal/logging"
	"github.com/aretw0/statesync/pkg/adapters/timeline"
)

// Validate parses the timeline at path and checks that every relay name it
// uses resolves to a declared state, and that no kind is declared twice.
func Validate(path string) (*timeline.Timeline, error) {
	tl, err := timeline.Load(path)
	if err != nil {
		return nil, err
	}

	m, _, err := BuildMachine(tl, logging.NewNop(), statesync.WithStrict(true))
	if err != nil {
		return tl, err
	}
	if err := m.Validate(tl.Names()...); err != nil {
		return tl, fmt.Errorf("timeline %s: %w", tl.Name, err)
	}
	return tl, nil
}
