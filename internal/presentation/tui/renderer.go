package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// RenderFunc turns markdown into terminal output.
type RenderFunc func(string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() RenderFunc {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return Plain
	}
	return r.Render
}

// Plain returns markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RendererFor picks glamour for terminals and Plain for pipes and files.
func RendererFor(w io.Writer) RenderFunc {
	if IsTerminal(w) {
		return NewRenderer()
	}
	return Plain
}
