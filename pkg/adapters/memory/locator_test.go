package memory_test

import (
	"testing"

	"github.com/aretw0/statesync/pkg/adapters/memory"
	"github.com/aretw0/statesync/pkg/domain"
	contract "github.com/aretw0/statesync/pkg/ports/tests"
	"github.com/aretw0/statesync/pkg/state"
)

type namedState struct {
	state.Base
	kind domain.Kind
}

func (s *namedState) Kind() domain.Kind { return s.kind }

func TestInMemoryLocator_Contract(t *testing.T) {
	states := []state.State{
		&namedState{kind: "Idle"},
		&namedState{kind: "RunState"},
		&namedState{kind: "Jump"},
	}

	contract.LocatorContractTest(t, memory.NewLocator(states...), states)
}

func TestDriver_Layers(t *testing.T) {
	d := memory.NewDriver("Base", "Upper")

	if d.LayerCount() != 2 {
		t.Fatalf("expected 2 layers, got %d", d.LayerCount())
	}
	if d.LayerName(1) != "Upper" {
		t.Errorf("expected layer 1 'Upper', got %q", d.LayerName(1))
	}
	if d.LayerName(2) != "" {
		t.Errorf("expected empty name out of range, got %q", d.LayerName(2))
	}
}
