package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown by the interactive console.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _   _ _____ _    ", "#818cf8"},
		{" | \\ | |  ___/ \\   ", "#a78bfa"},
		{" |  \\| | |_ / _ \\  ", "#c084fc"},
		{" | |\\  |  _/ ___ \\ ", "#e879f9"},
		{" |_| \\_|_|/_/   \\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  M = (Σ, Q, δ, S, F)").Faint())
	fmt.Fprintln(w)
}
