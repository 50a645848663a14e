package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultDelta is the frame length used when a timeline does not set one.
const DefaultDelta = 1.0 / 60

// Timeline is a scripted sequence of driver lifecycle calls.
type Timeline struct {
	Name   string   `mapstructure:"name" json:"name"`
	Delta  float64  `mapstructure:"delta" json:"delta"`
	Frames int      `mapstructure:"frames" json:"frames"`
	Layers []string `mapstructure:"layers" json:"layers"`

	// States lists the kinds the host registers. Names used by events but
	// missing here exercise unresolved relays.
	States []string `mapstructure:"states" json:"states"`

	Events []Event `mapstructure:"events" json:"events"`
}

// Event is one driver action at a given frame. Exactly one action is set.
type Event struct {
	Frame int `mapstructure:"frame" json:"frame"`
	Layer int `mapstructure:"layer" json:"layer"`

	Enter       string `mapstructure:"enter" json:"enter,omitempty"`
	Exit        bool   `mapstructure:"exit" json:"exit,omitempty"`
	Machine     string `mapstructure:"machine" json:"machine,omitempty"`
	MachineExit bool   `mapstructure:"machine_exit" json:"machine_exit,omitempty"`
	Disable     bool   `mapstructure:"disable" json:"disable,omitempty"`
	Enable      bool   `mapstructure:"enable" json:"enable,omitempty"`
}

func (e Event) actions() int {
	n := 0
	for _, set := range []bool{e.Enter != "", e.Exit, e.Machine != "", e.MachineExit, e.Disable, e.Enable} {
		if set {
			n++
		}
	}
	return n
}

// Load reads a timeline file. The format follows the extension:
// .json, .toml, anything else is YAML.
func Load(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	tl, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if tl.Name == "" {
		tl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return tl, nil
}

// Parse decodes a timeline in the given format ("json", "toml" or "yaml"),
// applies defaults and validates it.
func Parse(data []byte, format string) (*Timeline, error) {
	raw := map[string]any{}

	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json timeline: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml timeline: %w", err)
		}
	default:
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml timeline: %w", err)
		}
	}

	var tl Timeline
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &tl,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}

	tl.applyDefaults()
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &tl, nil
}

func (tl *Timeline) applyDefaults() {
	if tl.Delta == 0 {
		tl.Delta = DefaultDelta
	}
	sort.SliceStable(tl.Events, func(i, j int) bool {
		return tl.Events[i].Frame < tl.Events[j].Frame
	})
	if tl.Frames == 0 && len(tl.Events) > 0 {
		tl.Frames = tl.Events[len(tl.Events)-1].Frame + 1
	}
}

// Validate checks layer indexes, frame bounds and that every event sets one action.
func (tl *Timeline) Validate() error {
	var errs []error
	if len(tl.Layers) == 0 {
		errs = append(errs, errors.New("timeline declares no layers"))
	}
	if tl.Delta < 0 {
		errs = append(errs, fmt.Errorf("negative delta %v", tl.Delta))
	}
	for i, e := range tl.Events {
		if n := e.actions(); n != 1 {
			errs = append(errs, fmt.Errorf("event %d (frame %d): expected exactly one action, got %d", i, e.Frame, n))
		}
		if e.Frame < 0 || e.Frame >= tl.Frames {
			errs = append(errs, fmt.Errorf("event %d: frame %d outside [0, %d)", i, e.Frame, tl.Frames))
		}
		if e.Layer < 0 || e.Layer >= len(tl.Layers) {
			errs = append(errs, fmt.Errorf("event %d: layer %d outside [0, %d)", i, e.Layer, len(tl.Layers)))
		}
		if (e.Machine != "" || e.MachineExit) && e.Layer != 0 {
			errs = append(errs, fmt.Errorf("event %d: sub-machine events run on layer 0", i))
		}
	}
	return errors.Join(errs...)
}

// Names returns every relay name the timeline uses, in first-use order.
func (tl *Timeline) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range tl.Events {
		for _, name := range []string{e.Enter, e.Machine} {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// LayerStates returns, per layer, the distinct names entered on it.
// Sub-machines are listed on layer 0.
func (tl *Timeline) LayerStates() [][]string {
	out := make([][]string, len(tl.Layers))
	seen := make([]map[string]bool, len(tl.Layers))
	for i := range seen {
		seen[i] = make(map[string]bool)
	}
	for _, e := range tl.Events {
		name := e.Enter
		if name == "" {
			name = e.Machine
		}
		if name == "" || e.Layer < 0 || e.Layer >= len(out) || seen[e.Layer][name] {
			continue
		}
		seen[e.Layer][name] = true
		out[e.Layer] = append(out[e.Layer], name)
	}
	return out
}
