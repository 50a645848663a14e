package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/statesync/pkg/domain"
)

// Transition is an observed switch between two states on one layer.
type Transition struct {
	From string
	To   string
}

// Layer is one subgraph: the states a layer can hold and the transitions
// seen between them.
type Layer struct {
	Name        string
	States      []string
	Machines    []string
	Transitions []Transition
}

// GenerateMermaid produces a Mermaid flowchart with one subgraph per layer.
// It applies semantic styling:
// - State: [Rectangle]
// - Sub-machine: [[Subroutine]]
// When overlay is set, the current and last state of each layer are styled.
func GenerateMermaid(layers []Layer, overlay *domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, l := range layers {
		fmt.Fprintf(&sb, "    subgraph L%d[\"%d: %s\"]\n", i, i, escapeLabel(l.Name))
		for _, name := range l.Machines {
			fmt.Fprintf(&sb, "        %s[[\"%s\"]]\n", nodeID(i, name), escapeLabel(name))
		}
		for _, name := range l.States {
			fmt.Fprintf(&sb, "        %s[\"%s\"]\n", nodeID(i, name), escapeLabel(name))
		}
		for _, t := range l.Transitions {
			fmt.Fprintf(&sb, "        %s --> %s\n", nodeID(i, t.From), nodeID(i, t.To))
		}
		sb.WriteString("    end\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef last fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, lv := range overlay.Layers {
			if lv.Index < 0 || lv.Index >= len(layers) {
				continue
			}
			if !lv.Last.IsZero() && lv.Last != lv.Current {
				fmt.Fprintf(&sb, "    class %s last;\n", nodeID(lv.Index, findName(layers[lv.Index], lv.Last)))
			}
			if !lv.Current.IsZero() {
				fmt.Fprintf(&sb, "    class %s current;\n", nodeID(lv.Index, findName(layers[lv.Index], lv.Current)))
			}
			if !lv.Machine.IsZero() {
				fmt.Fprintf(&sb, "    class %s current;\n", nodeID(lv.Index, findName(layers[lv.Index], lv.Machine)))
			}
		}
	}

	return sb.String()
}

// findName maps a kind back to the spelling used in the layer, since relay
// names match kinds ignoring case.
func findName(l Layer, kind domain.Kind) string {
	for _, names := range [][]string{l.States, l.Machines} {
		for _, name := range names {
			if kind.Matches(name) {
				return name
			}
		}
	}
	return kind.String()
}

func nodeID(layer int, name string) string {
	return fmt.Sprintf("L%d_%s", layer, sanitizeMermaidID(strings.ToLower(name)))
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
