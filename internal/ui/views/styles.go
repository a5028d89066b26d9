package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Section       lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Mode          lipgloss.Style
	Inactive      lipgloss.Style
	Pending       lipgloss.Style
	Language      lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	HighlightBg   lipgloss.Style
	Header        lipgloss.Style
	Link          lipgloss.Style
	HelpBox       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Label:    lipgloss.NewStyle().Bold(true),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Mode:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Pending: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Help:     lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Header:      lipgloss.NewStyle().Bold(true).Underline(true),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
