package timeline

import (
	"github.com/aretw0/statesync/pkg/relay"
)

type relayKey struct {
	layer int
	name  string
}

// Player plays a Timeline against a relay host and acts as its ports.Driver.
type Player struct {
	tl *Timeline

	frame    uint64
	next     int
	disabled bool

	// Relay instances live while the driver is enabled, one per layer and name.
	relays   map[relayKey]*relay.StateRelay
	machines map[string]*relay.MachineRelay

	active  []*relay.StateRelay
	machine *relay.MachineRelay

	// Names to re-enter after an enable.
	resume        []string
	resumeMachine string
}

// NewPlayer creates a player positioned at frame 0.
func NewPlayer(tl *Timeline) *Player {
	p := &Player{tl: tl}
	p.reset()
	return p
}

func (p *Player) reset() {
	p.relays = make(map[relayKey]*relay.StateRelay)
	p.machines = make(map[string]*relay.MachineRelay)
	p.active = make([]*relay.StateRelay, len(p.tl.Layers))
	p.machine = nil
}

// LayerCount implements ports.Driver.
func (p *Player) LayerCount() int {
	return len(p.tl.Layers)
}

// LayerName implements ports.Driver.
func (p *Player) LayerName(index int) string {
	if index < 0 || index >= len(p.tl.Layers) {
		return ""
	}
	return p.tl.Layers[index]
}

// Timeline returns the timeline being played.
func (p *Player) Timeline() *Timeline {
	return p.tl
}

// Frame returns the index of the next frame to play.
func (p *Player) Frame() uint64 {
	return p.frame
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.frame >= uint64(p.tl.Frames)
}

// Active returns the relay currently active on layer, or nil.
func (p *Player) Active(layer int) *relay.StateRelay {
	if layer < 0 || layer >= len(p.active) {
		return nil
	}
	return p.active[layer]
}

func (p *Player) stateRelay(layer int, name string) *relay.StateRelay {
	key := relayKey{layer: layer, name: name}
	r, ok := p.relays[key]
	if !ok {
		r = relay.NewState(name)
		p.relays[key] = r
	}
	return r
}

func (p *Player) machineRelay(name string) *relay.MachineRelay {
	r, ok := p.machines[name]
	if !ok {
		r = relay.NewMachine(name)
		p.machines[name] = r
	}
	return r
}

// Step plays one frame: due events first, then one update per active layer.
// It reports whether frames remain.
func (p *Player) Step(h relay.Host) bool {
	if p.Done() {
		return false
	}

	for p.next < len(p.tl.Events) && p.tl.Events[p.next].Frame <= int(p.frame) {
		p.apply(h, p.tl.Events[p.next])
		p.next++
	}

	if !p.disabled {
		for layer, r := range p.active {
			if r != nil {
				r.OnStateUpdate(h, layer, p.tl.Delta)
			}
		}
	}

	p.frame++
	return !p.Done()
}

// Play steps until the timeline ends, calling after once per frame.
func (p *Player) Play(h relay.Host, after func(frame uint64)) {
	for !p.Done() {
		frame := p.frame
		p.Step(h)
		if after != nil {
			after(frame)
		}
	}
}

// Rewind exits every open activation, drops all relays and returns to frame 0.
func (p *Player) Rewind(h relay.Host) {
	if !p.disabled {
		p.exitAll(h)
	}
	p.reset()
	p.disabled = false
	p.resume = nil
	p.resumeMachine = ""
	p.frame = 0
	p.next = 0
}

func (p *Player) apply(h relay.Host, e Event) {
	if p.disabled {
		if e.Enable {
			p.enable(h)
			return
		}
		p.record(e)
		return
	}

	switch {
	case e.Enter != "":
		if cur := p.active[e.Layer]; cur != nil {
			cur.OnStateExit(h, e.Layer)
		}
		r := p.stateRelay(e.Layer, e.Enter)
		p.active[e.Layer] = r
		r.OnStateEnter(h, e.Layer)
	case e.Exit:
		if cur := p.active[e.Layer]; cur != nil {
			cur.OnStateExit(h, e.Layer)
			p.active[e.Layer] = nil
		}
	case e.Machine != "":
		if p.machine != nil {
			p.machine.OnMachineExit(h)
		}
		p.machine = p.machineRelay(e.Machine)
		p.machine.OnMachineEnter(h)
	case e.MachineExit:
		if p.machine != nil {
			p.machine.OnMachineExit(h)
			p.machine = nil
		}
	case e.Disable:
		p.disable(h)
	}
}

// record keeps what the driver resumes with while it is disabled.
func (p *Player) record(e Event) {
	switch {
	case e.Enter != "":
		p.resume[e.Layer] = e.Enter
	case e.Exit:
		p.resume[e.Layer] = ""
	case e.Machine != "":
		p.resumeMachine = e.Machine
	case e.MachineExit:
		p.resumeMachine = ""
	}
}

// disable ends open activations and destroys every relay instance.
func (p *Player) disable(h relay.Host) {
	p.resume = make([]string, len(p.active))
	for layer, r := range p.active {
		if r != nil {
			p.resume[layer] = r.Name()
		}
	}
	p.resumeMachine = ""
	if p.machine != nil {
		p.resumeMachine = p.machine.Name()
	}

	p.exitAll(h)
	p.reset()
	p.disabled = true
}

// enable re-enters the resumed names through freshly created relays.
func (p *Player) enable(h relay.Host) {
	p.disabled = false
	if p.resumeMachine != "" {
		p.machine = p.machineRelay(p.resumeMachine)
		p.machine.OnMachineEnter(h)
	}
	for layer, name := range p.resume {
		if name == "" {
			continue
		}
		r := p.stateRelay(layer, name)
		p.active[layer] = r
		r.OnStateEnter(h, layer)
	}
	p.resume = nil
	p.resumeMachine = ""
}

func (p *Player) exitAll(h relay.Host) {
	for layer, r := range p.active {
		if r != nil {
			r.OnStateExit(h, layer)
			p.active[layer] = nil
		}
	}
	if p.machine != nil {
		p.machine.OnMachineExit(h)
		p.machine = nil
	}
}
