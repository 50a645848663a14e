package domain

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter   EventType = "state_enter"
	EventStateUpdate  EventType = "state_update"
	EventStateExit    EventType = "state_exit"
	EventMachineEnter EventType = "machine_enter"
	EventMachineExit  EventType = "machine_exit"
)

// StateEvent describes one lifecycle call forwarded to a state.
type StateEvent struct {
	Type  EventType `json:"type"`
	Layer int       `json:"layer"`
	Kind  Kind      `json:"kind"`

	// Delta is the frame delta of an update, zero otherwise.
	Delta float64 `json:"delta,omitempty"`

	// Frames and Seconds hold the activation counters. For exits they are the
	// values observed immediately before the reset.
	Frames  uint64  `json:"frames"`
	Seconds float64 `json:"seconds"`
}

// LifecycleHooks defines callbacks for machine observability.
// Hooks run synchronously on the frame that triggered them.
type LifecycleHooks struct {
	OnEnter  func(*StateEvent)
	OnUpdate func(*StateEvent)
	OnExit   func(*StateEvent)
}

// Fire dispatches e to the hook matching its type.
func (h LifecycleHooks) Fire(e *StateEvent) {
	switch e.Type {
	case EventStateEnter, EventMachineEnter:
		if h.OnEnter != nil {
			h.OnEnter(e)
		}
	case EventStateUpdate:
		if h.OnUpdate != nil {
			h.OnUpdate(e)
		}
	case EventStateExit, EventMachineExit:
		if h.OnExit != nil {
			h.OnExit(e)
		}
	}
}
