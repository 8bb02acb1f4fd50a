package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wizard banner to w, colored when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _____                 _     _           _                 _   ", "#fbbf24"},
		{"|_   _| __ ___  _   _| |__ | | ___  ___| |__   ___   ___ | |_ ", "#f59e0b"},
		{"  | || '__/ _ \\| | | | '_ \\| |/ _ \\/ __| '_ \\ / _ \\ / _ \\| __|", "#f97316"},
		{"  | || | | (_) | |_| | |_) | |  __/\\__ \\ | | | (_) | (_) | |_ ", "#ea580c"},
		{"  |_||_|  \\___/ \\__,_|_.__/|_|\\___||___/_| |_|\\___/ \\___/ \\__|", "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
