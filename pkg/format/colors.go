package format

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// colorNames maps terminal colour names to ANSI colour numbers.
var colorNames = map[string]int{
	"black":         0,
	"grey":          0,
	"red":           1,
	"green":         2,
	"yellow":        3,
	"blue":          4,
	"magenta":       5,
	"cyan":          6,
	"white":         7,
	"dark_grey":     8,
	"light_red":     9,
	"light_green":   10,
	"light_yellow":  11,
	"light_blue":    12,
	"light_magenta": 13,
	"light_cyan":    14,
	"light_white":   15,
}

// LookupColor resolves a colour name or an ANSI-256 number.
func LookupColor(name string) (lipgloss.Color, bool) {
	if n, ok := colorNames[name]; ok {
		return lipgloss.Color(strconv.Itoa(n)), true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < 256 {
		return lipgloss.Color(name), true
	}
	return "", false
}

// NewRenderer returns a renderer for w. Colour is off when noColor is set or
// w is not a terminal.
func NewRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor || !IsTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
