package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the autocore ASCII art banner.
func PrintBanner(w io.Writer, p termenv.Profile) {
	// Road-sign gradient (Amber to Red)
	lines := []struct {
		text  string
		color string
	}{
		{"              _                               ", "#fde047"},
		{"   __ _ _   _| |_ ___   ___ ___  _ __ ___     ", "#facc15"},
		{"  / _` | | | | __/ _ \\ / __/ _ \\| '__/ _ \\", "#fb923c"},
		{" | (_| | |_| | || (_) | (_| (_) | | |  __/    ", "#f97316"},
		{"  \\__,_|\\__,_|\\__\\___/ \\___\\___/|_|  \\___|", "#ef4444"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
