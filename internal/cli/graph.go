package cli

import (
	"github.com/aretw0/statesync/internal/logging"
	"github.com/aretw0/statesync/internal/presentation/graph"
	"github.com/aretw0/statesync/pkg/adapters/timeline"
	"github.com/aretw0/statesync/pkg/domain"
)

// Graph renders the timeline's layers as Mermaid. When at is not negative,
// the timeline is played through frame at and the resulting snapshot is
// drawn as an overlay.
func Graph(path string, at int) (string, error) {
	tl, err := timeline.Load(path)
	if err != nil {
		return "", err
	}

	var overlay *domain.Snapshot
	if at >= 0 {
		m, player, err := BuildMachine(tl, logging.NewNop())
		if err != nil {
			return "", err
		}
		for !player.Done() && player.Frame() <= uint64(at) {
			player.Step(m)
		}
		snap := m.Snapshot(player.Frame())
		overlay = &snap
	}

	return graph.GenerateMermaid(graphLayers(tl), overlay), nil
}

// graphLayers derives the states and observed transitions of each layer
// from the timeline events.
func graphLayers(tl *timeline.Timeline) []graph.Layer {
	out := make([]graph.Layer, len(tl.Layers))
	prev := make([]string, len(tl.Layers))
	seenState := make([]map[string]bool, len(tl.Layers))
	seenEdge := make([]map[graph.Transition]bool, len(tl.Layers))
	for i, name := range tl.Layers {
		out[i].Name = name
		seenState[i] = make(map[string]bool)
		seenEdge[i] = make(map[graph.Transition]bool)
	}

	seenMachine := make(map[string]bool)
	for _, e := range tl.Events {
		switch {
		case e.Machine != "":
			if !seenMachine[e.Machine] {
				seenMachine[e.Machine] = true
				out[e.Layer].Machines = append(out[e.Layer].Machines, e.Machine)
			}
		case e.Enter != "":
			if !seenState[e.Layer][e.Enter] {
				seenState[e.Layer][e.Enter] = true
				out[e.Layer].States = append(out[e.Layer].States, e.Enter)
			}
			if from := prev[e.Layer]; from != "" {
				t := graph.Transition{From: from, To: e.Enter}
				if !seenEdge[e.Layer][t] {
					seenEdge[e.Layer][t] = true
					out[e.Layer].Transitions = append(out[e.Layer].Transitions, t)
				}
			}
			prev[e.Layer] = e.Enter
		case e.Exit:
			prev[e.Layer] = ""
		}
	}
	return out
}
