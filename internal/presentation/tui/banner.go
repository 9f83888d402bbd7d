package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tracehook banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Amber to orange, one shade per line
	lines := []struct {
		text  string
		color string
	}{
		{"  _                       _                 _    ", "#fde68a"},
		{" | |_ _ __ __ _  ___ ___| |__   ___   ___ | | __", "#fcd34d"},
		{" | __| '__/ _` |/ __/ _ \\ '_ \\ / _ \\ / _ \\| |/ /", "#fbbf24"},
		{" | |_| | | (_| | (_|  __/ | | | (_) | (_) |   < ", "#f59e0b"},
		{"  \\__|_|  \\__,_|\\___\\___|_| |_|\\___/ \\___/|_|\\_\\", "#d97706"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
