package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for the browser
type Styles struct {
	Title       lipgloss.Style
	User        lipgloss.Style
	Mode        lipgloss.Style
	Dim         lipgloss.Style
	Search      lipgloss.Style
	Company     lipgloss.Style
	Star        lipgloss.Style
	Pending     lipgloss.Style
	Selected    lipgloss.Style
	Page        lipgloss.Style
	PageCurrent lipgloss.Style
	Error       lipgloss.Style
	Loading     lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		User:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Mode:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:     lipgloss.NewStyle().Faint(true),
		Search:  lipgloss.NewStyle().MarginTop(1).MarginBottom(1),
		Company: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Star:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Bold(true),
		Page:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PageCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // red
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Help:    lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main:    lipgloss.NewStyle().Padding(1, 2),
	}
}
