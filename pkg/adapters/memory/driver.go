package memory

// Driver implements ports.Driver with a fixed list of layer names.
type Driver struct {
	names []string
}

// NewDriver creates a driver with one layer per name.
func NewDriver(names ...string) *Driver {
	return &Driver{names: append([]string(nil), names...)}
}

// LayerCount returns the number of layers.
func (d *Driver) LayerCount() int {
	return len(d.names)
}

// LayerName returns the name of the layer at index, or "" when out of range.
func (d *Driver) LayerName(index int) string {
	if index < 0 || index >= len(d.names) {
		return ""
	}
	return d.names[index]
}
