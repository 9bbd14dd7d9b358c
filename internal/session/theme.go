package session

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#B39DFF"}
	heading = lipgloss.AdaptiveColor{Light: "#00695C", Dark: "#64FFDA"}
	muted   = lipgloss.AdaptiveColor{Light: "#616161", Dark: "#9E9E9E"}
	warning = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFD54F"}
	danger  = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF8A80"}
	success = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#B9F6CA"}
)

// Theme is the set of styles used for terminal output.
type Theme struct {
	Title   lipgloss.Style
	Tutor   lipgloss.Style
	Section lipgloss.Style
	Prompt  lipgloss.Style
	Muted   lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	OK      lipgloss.Style
}

// NewTheme binds styles to w. dark selects the dark-background palette.
func NewTheme(w io.Writer, dark bool) Theme {
	r := lipgloss.NewRenderer(w)
	r.SetHasDarkBackground(dark)

	return Theme{
		Title:   r.NewStyle().Foreground(accent).Bold(true),
		Tutor:   r.NewStyle().Foreground(accent).Bold(true),
		Section: r.NewStyle().Foreground(heading).Bold(true),
		Prompt:  r.NewStyle().Foreground(heading),
		Muted:   r.NewStyle().Foreground(muted).Italic(true),
		Warn:    r.NewStyle().Foreground(warning),
		Error:   r.NewStyle().Foreground(danger).Bold(true),
		OK:      r.NewStyle().Foreground(success),
	}
}
