package domain

// LayerView is a read-only copy of one layer's bookkeeping.
// Empty kinds mean "none".
type LayerView struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Current     Kind   `json:"current,omitempty"`
	Last        Kind   `json:"last,omitempty"`
	Machine     Kind   `json:"machine,omitempty"`
	LastMachine Kind   `json:"last_machine,omitempty"`
}

// StateView is a read-only copy of a state object's status.
type StateView struct {
	Kind      Kind    `json:"kind"`
	Enabled   bool    `json:"enabled"`
	Executing bool    `json:"executing"`
	Frames    uint64  `json:"frames"`
	Seconds   float64 `json:"seconds"`
}

// Snapshot bundles everything an overlay needs to render one frame.
type Snapshot struct {
	Machine string      `json:"machine"`
	Frame   uint64      `json:"frame"`
	Active  bool        `json:"active"`
	Layers  []LayerView `json:"layers"`
	States  []StateView `json:"states"`
}

// State returns the view whose kind matches name case-insensitively.
// The first match in registration order wins.
func (s Snapshot) State(name string) (StateView, bool) {
	for _, v := range s.States {
		if v.Kind.Matches(name) {
			return v, true
		}
	}
	return StateView{}, false
}

// Layer returns the view for index.
func (s Snapshot) Layer(index int) (LayerView, bool) {
	if index < 0 || index >= len(s.Layers) {
		return LayerView{}, false
	}
	return s.Layers[index], true
}
