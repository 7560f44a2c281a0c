package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the handik banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text, color string
	}{
		{"  _                     _ _ _    ", "#34d399"},
		{" | |__   __ _ _ __   __| (_) | __", "#2dd4bf"},
		{" | '_ \\ / _` | '_ \\ / _` | | |/ /", "#22d3ee"},
		{" | | | | (_| | | | | (_| | |   < ", "#38bdf8"},
		{" |_| |_|\\__,_|_| |_|\\__,_|_|_|\\_\\", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
