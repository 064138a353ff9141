package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the UI
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Item    lipgloss.Style
	Dim     lipgloss.Style
	Loading lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginTop(1),
		Item:    lipgloss.NewStyle().PaddingLeft(2),
		Dim:     lipgloss.NewStyle().Faint(true).PaddingLeft(2),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Help:    lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
