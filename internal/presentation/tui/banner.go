package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Wayfinder.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to blue, like a compass rose at dusk
	lines := []struct {
		text  string
		color string
	}{
		{` __      __              __ _         _`, "#2dd4bf"},
		{` \ \    / /_ _ _  _ ___ / _(_)_ _  __| |___ _ _`, "#22d3ee"},
		{`  \ \/\/ / _' | || |___|  _| | ' \/ _' / -_) '_|`, "#38bdf8"},
		{`   \_/\_/\__,_|\_, |    |_| |_|_||_\__,_\___|_|`, "#60a5fa"},
		{`               |__/`, "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
