package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/statesync/pkg/domain"
)

// OverlayMarkdown formats a snapshot as a markdown layers table followed by
// a states table.
func OverlayMarkdown(snap domain.Snapshot) string {
	var sb strings.Builder

	title := snap.Machine
	if title == "" {
		title = "machine"
	}
	status := "active"
	if !snap.Active {
		status = "inactive"
	}
	fmt.Fprintf(&sb, "## %s · frame %d · %s\n\n", title, snap.Frame, status)

	sb.WriteString("| # | Layer | Current | Last | Sub-machine |\n")
	sb.WriteString("|---|-------|---------|------|-------------|\n")
	for _, l := range snap.Layers {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
			l.Index, cell(l.Name), kindCell(l.Current), kindCell(l.Last), kindCell(l.Machine))
	}

	if len(snap.States) > 0 {
		sb.WriteString("\n| State | Enabled | Executing | Frames | Seconds |\n")
		sb.WriteString("|-------|---------|-----------|--------|---------|\n")
		for _, s := range snap.States {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d | %.3f |\n",
				s.Kind, yesNo(s.Enabled), yesNo(s.Executing), s.Frames, s.Seconds)
		}
	}
	return sb.String()
}

// WriteOverlay renders snap to w with render.
func WriteOverlay(w io.Writer, snap domain.Snapshot, render RenderFunc) error {
	if render == nil {
		render = Plain
	}
	out, err := render(OverlayMarkdown(snap))
	if err != nil {
		return fmt.Errorf("render overlay: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func kindCell(k domain.Kind) string {
	if k.IsZero() {
		return "-"
	}
	return cell(k.String())
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
