package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Styler colours CLI output. Without a terminal it writes plain text.
type Styler struct {
	profile termenv.Profile
}

// NewStyler picks the colour profile of the environment when interactive.
func NewStyler(interactive bool) *Styler {
	if !interactive {
		return &Styler{profile: termenv.Ascii}
	}
	return &Styler{profile: termenv.ColorProfile()}
}

// Error renders a failure line.
func (s *Styler) Error(msg string) string {
	return s.profile.String(msg).Foreground(s.profile.Color("#f87171")).Bold().String()
}

// Command renders a resolved command.
func (s *Styler) Command(cmd string) string {
	return s.profile.String(cmd).Foreground(s.profile.Color("#a78bfa")).String()
}

// Faint renders secondary information.
func (s *Styler) Faint(msg string) string {
	return s.profile.String(msg).Faint().String()
}

// PrintBanner writes the interactive shell greeting.
func (s *Styler) PrintBanner(w io.Writer, version string) {
	lines := []struct{ text, color string }{
		{"        _ _ ", "#818cf8"},
		{"   __ _| (_)", "#a78bfa"},
		{"  / _` | | |", "#c084fc"},
		{" | (_| | | |", "#e879f9"},
		{"  \\__,_|_|_|", "#f472b6"},
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, s.profile.String(l.text).Foreground(s.profile.Color(l.color)))
	}
	fmt.Fprintln(w, s.Faint("  v"+version+"  type 'exit' to quit"))
	fmt.Fprintln(w)
}
