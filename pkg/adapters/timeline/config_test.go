package timeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/statesync/pkg/adapters/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlTimeline = `
name: hero
delta: 0.016
frames: 20
layers: [Base, Upper]
states: [Idle, Run]
events:
  - { frame: 5, layer: 0, enter: Run }
  - { frame: 0, layer: 0, enter: Idle }
  - { frame: 8, layer: 1, enter: Aim }
  - { frame: 12, layer: 1, exit: true }
`

const jsonTimeline = `{
  "name": "hero",
  "delta": 0.016,
  "frames": 20,
  "layers": ["Base", "Upper"],
  "states": ["Idle", "Run"],
  "events": [
    {"frame": 5, "layer": 0, "enter": "Run"},
    {"frame": 0, "layer": 0, "enter": "Idle"},
    {"frame": 8, "layer": 1, "enter": "Aim"},
    {"frame": 12, "layer": 1, "exit": true}
  ]
}`

const tomlTimeline = `
name = "hero"
delta = 0.016
frames = 20
layers = ["Base", "Upper"]
states = ["Idle", "Run"]

[[events]]
frame = 5
layer = 0
enter = "Run"

[[events]]
frame = 0
layer = 0
enter = "Idle"

[[events]]
frame = 8
layer = 1
enter = "Aim"

[[events]]
frame = 12
layer = 1
exit = true
`

func TestParse_Formats(t *testing.T) {
	for format, data := range map[string]string{
		"yaml": yamlTimeline,
		"json": jsonTimeline,
		"toml": tomlTimeline,
	} {
		t.Run(format, func(t *testing.T) {
			tl, err := timeline.Parse([]byte(data), format)
			require.NoError(t, err)

			assert.Equal(t, "hero", tl.Name)
			assert.InDelta(t, 0.016, tl.Delta, 1e-9)
			assert.Equal(t, 20, tl.Frames)
			assert.Equal(t, []string{"Base", "Upper"}, tl.Layers)
			require.Len(t, tl.Events, 4)

			// Events are sorted by frame
			assert.Equal(t, "Idle", tl.Events[0].Enter)
			assert.Equal(t, "Run", tl.Events[1].Enter)
			assert.True(t, tl.Events[3].Exit)

			assert.Equal(t, []string{"Idle", "Run", "Aim"}, tl.Names())
			assert.Equal(t, [][]string{{"Idle", "Run"}, {"Aim"}}, tl.LayerStates())
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	tl, err := timeline.Parse([]byte(`
layers: [Base]
events:
  - { frame: 9, enter: Idle }
`), "yaml")
	require.NoError(t, err)

	assert.InDelta(t, timeline.DefaultDelta, tl.Delta, 1e-12)
	assert.Equal(t, 10, tl.Frames)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"no layers":       `events: []`,
		"two actions":     "layers: [Base]\nevents:\n  - { frame: 0, enter: Idle, exit: true }",
		"no action":       "layers: [Base]\nevents:\n  - { frame: 0 }",
		"layer range":     "layers: [Base]\nevents:\n  - { frame: 0, layer: 3, enter: Idle }",
		"frame range":     "layers: [Base]\nframes: 5\nevents:\n  - { frame: 7, enter: Idle }",
		"machine layer":   "layers: [Base, Upper]\nevents:\n  - { frame: 0, layer: 1, machine: Locomotion }",
		"unknown key":     "layers: [Base]\nspeed: 3",
		"malformed input": "layers: [Base",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := timeline.Parse([]byte(data), "yaml")
			assert.Error(t, err)
		})
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locomotion.toml")
	data := "layers = [\"Base\"]\n\n[[events]]\nframe = 0\nenter = \"Idle\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	tl, err := timeline.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "locomotion", tl.Name)
	assert.Equal(t, 1, tl.Frames)

	_, err = timeline.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
