package ports

// Driver is the external engine that drives relays.
// The core reads its layer layout once, when the machine activates.
// Frame deltas are not read from the driver; they arrive as arguments of
// every update call.
type Driver interface {
	// LayerCount returns the number of parallel layers.
	LayerCount() int

	// LayerName returns the display name of the layer at index.
	LayerName(index int) string
}

// LayerNames reads every layer name of d in index order.
func LayerNames(d Driver) []string {
	names := make([]string, d.LayerCount())
	for i := range names {
		names[i] = d.LayerName(i)
	}
	return names
}
