package relay

import (
	"errors"
	"log/slog"

	"github.com/aretw0/statesync/pkg/state"
)

// MachineLayer is the layer sub-machine relays always report.
const MachineLayer = 0

var errNoHost = errors.New("relay invoked without a host")

// binding is the resolve-once logic shared by both relay variants.
type binding struct {
	name   string
	target state.State
	inert  bool
}

// bind resolves the target on first use. It reports false when the relay is inert.
func (b *binding) bind(h Host, kind string, layer int) bool {
	if b.inert {
		return false
	}
	if b.target != nil {
		return true
	}

	if h == nil {
		b.inert = true
		slog.Default().Error("relay unresolved", "relay", kind, "name", b.name, "layer", layer, "err", errNoHost)
		return false
	}

	target, err := h.Resolve(b.name)
	if err != nil {
		b.inert = true
		h.Logger().Error("relay unresolved",
			"relay", kind,
			"name", b.name,
			"layer", layer,
			"err", err,
		)
		return false
	}
	b.target = target
	return true
}

func report(h Host, kind, call string, layer int, err error) {
	if err == nil {
		return
	}
	h.Logger().Error("relay call rejected",
		"relay", kind,
		"call", call,
		"layer", layer,
		"err", err,
	)
}

// StateRelay forwards Enter, Update and Exit of one driver state.
type StateRelay struct {
	binding
}

// NewState creates a relay bound to name.
func NewState(name string) *StateRelay {
	return &StateRelay{binding{name: name}}
}

// Name returns the configured target name.
func (r *StateRelay) Name() string { return r.name }

// Target returns the resolved state, or nil before resolution and when inert.
func (r *StateRelay) Target() state.State { return r.target }

// Inert reports whether resolution failed for this instance.
func (r *StateRelay) Inert() bool { return r.inert }

// OnStateEnter forwards the driver's Enter for layer.
func (r *StateRelay) OnStateEnter(h Host, layer int) {
	if !r.bind(h, "state", layer) {
		return
	}
	report(h, "state", "enter", layer, h.EnterState(layer, r.target))
}

// OnStateUpdate forwards one frame of delta seconds.
func (r *StateRelay) OnStateUpdate(h Host, layer int, delta float64) {
	if !r.bind(h, "state", layer) {
		return
	}
	report(h, "state", "update", layer, h.UpdateState(layer, r.target, delta))
}

// OnStateExit forwards the driver's Exit for layer.
func (r *StateRelay) OnStateExit(h Host, layer int) {
	if !r.bind(h, "state", layer) {
		return
	}
	report(h, "state", "exit", layer, h.ExitState(layer, r.target))
}

// MachineRelay forwards Enter and Exit of a driver sub-machine.
// Frames inside the sub-machine reach states through nested StateRelays.
type MachineRelay struct {
	binding
}

// NewMachine creates a sub-machine relay bound to name.
func NewMachine(name string) *MachineRelay {
	return &MachineRelay{binding{name: name}}
}

// Name returns the configured target name.
func (r *MachineRelay) Name() string { return r.name }

// Target returns the resolved state, or nil before resolution and when inert.
func (r *MachineRelay) Target() state.State { return r.target }

// Inert reports whether resolution failed for this instance.
func (r *MachineRelay) Inert() bool { return r.inert }

// OnMachineEnter forwards the sub-machine Enter on MachineLayer.
func (r *MachineRelay) OnMachineEnter(h Host) {
	if !r.bind(h, "machine", MachineLayer) {
		return
	}
	report(h, "machine", "enter", MachineLayer, h.EnterMachine(MachineLayer, r.target))
}

// OnMachineExit forwards the sub-machine Exit on MachineLayer.
func (r *MachineRelay) OnMachineExit(h Host) {
	if !r.bind(h, "machine", MachineLayer) {
		return
	}
	report(h, "machine", "exit", MachineLayer, h.ExitMachine(MachineLayer, r.target))
}
