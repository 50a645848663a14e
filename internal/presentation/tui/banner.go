package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the statesync banner to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{"      _        _                            ", "#818cf8"},
		{"  ___| |_ __ _| |_ ___  ___ _   _ _ __   ___ ", "#a78bfa"},
		{" / __| __/ _` | __/ _ \\/ __| | | | '_ \\ / __|", "#c084fc"},
		{" \\__ \\ || (_| | ||  __/\\__ \\ |_| | | | | (__ ", "#e879f9"},
		{" |___/\\__\\__,_|\\__\\___||___/\\__, |_| |_|\\___|", "#f472b6"},
		{"                            |___/             ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
