package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReadyMarker is printed once the first frame is drawn when running under
// the end-to-end harness
const ReadyMarker = "__READY__"

// PanelRow is one line of the settings panel
type PanelRow struct {
	Label      string
	Toggleable bool
	Active     bool
	Mode       string
	Value      string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Rows          []PanelRow
	SelectedIndex int
	Pending       bool
	AutoSubmit    bool
	Languages     []string

	Editing   bool
	EditLabel string
	TextInput string

	Headers     []string
	Table       [][]string
	TableOffset int
	Loading     bool
	HasResult   bool

	StatusMessage string
	StatusIsError bool
	FooterHelp    string
	ShowHelp      bool
	HelpContent   string
	ShowReady     bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	innerWidth := width - 4

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, innerWidth))
	content.WriteString("\n\n")
	content.WriteString(r.renderPanel(state))
	content.WriteString("\n")

	if state.Editing {
		content.WriteString(r.styles.Label.Render(state.EditLabel + ": "))
		content.WriteString(state.TextInput)
		content.WriteString("\n")
	}
	content.WriteString("\n")

	used := strings.Count(content.String(), "\n")
	// status line, footer and container padding
	tableHeight := state.Height - used - 5
	if tableHeight < 3 {
		tableHeight = 3
	}
	content.WriteString(r.renderTable(state, innerWidth, tableHeight))
	content.WriteString("\n\n")
	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.FooterHelp))

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	final := mainStyle.Render(content.String())

	if state.ShowHelp {
		return r.renderHelpOverlay(state, width)
	}
	return final
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("pokefinder")

	var right []string
	if state.Pending {
		right = append(right, r.styles.Pending.Render("PENDING"))
	}
	submit := "auto-submit"
	if !state.AutoSubmit {
		submit = "manual submit"
	}
	right = append(right, r.styles.Dim.Render(submit))
	if len(state.Languages) > 0 {
		right = append(right, r.styles.Language.Render(strings.ToUpper(strings.Join(state.Languages, "/"))))
	}
	if state.ShowReady {
		right = append(right, ReadyMarker)
	}

	rightContent := strings.Join(right, "  ")
	padding := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) renderStatus(state ViewState) string {
	switch {
	case state.StatusMessage != "" && state.StatusIsError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case state.StatusMessage != "":
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	case state.Loading:
		return r.styles.StatusLoading.Render("Loading...")
	case state.HasResult:
		return r.styles.StatusLoading.Render(fmt.Sprintf("%d pokémon", len(state.Table)))
	}
	return ""
}

func (r *Renderer) renderHelpOverlay(state ViewState, width int) string {
	box := r.styles.HelpBox.Render(state.HelpContent)
	height := state.Height
	if height <= 0 {
		height = lipgloss.Height(box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
