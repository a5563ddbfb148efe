// Package styles holds the lipgloss styles for text peek prints outside the
// screen it owns: startup errors and the key binding listing.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on dark backgrounds
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	ErrorColor   = lipgloss.Color("#F87171") // Red
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	TextColor    = lipgloss.Color("#F9FAFB") // Light text
)

// Styles is a set of styles bound to one output. Colors are only emitted
// when that output is a color-capable terminal.
type Styles struct {
	Title      lipgloss.Style
	Key        lipgloss.Style
	Muted      lipgloss.Style
	ErrorLabel lipgloss.Style
	Error      lipgloss.Style
}

// New returns the styles rendered through r.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		Key: r.NewStyle().
			Bold(true).
			Foreground(TextColor),
		Muted: r.NewStyle().
			Foreground(MutedColor),
		ErrorLabel: r.NewStyle().
			Bold(true).
			Foreground(ErrorColor),
		Error: r.NewStyle().
			Foreground(ErrorColor),
	}
}

// ForWriter returns styles for w, detecting its color support.
func ForWriter(w io.Writer) Styles {
	return New(lipgloss.NewRenderer(w))
}

// FormatError renders err as "Error: <message>".
func (s Styles) FormatError(err error) string {
	return s.ErrorLabel.Render("Error:") + " " + s.Error.Render(err.Error())
}
