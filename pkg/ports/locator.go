package ports

import "github.com/aretw0/statesync/pkg/state"

// Locator finds state objects already present in the owning object graph.
// It is consulted while the registry is built and as a fallback while a
// relay resolves its name.
type Locator interface {
	// States returns every state object in the graph, in a stable order.
	States() []state.State

	// Locate returns the state whose kind matches name ignoring case.
	Locate(name string) (state.State, bool)
}
