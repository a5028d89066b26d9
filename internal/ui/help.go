package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/noborus/ov/oviewer"

	"pokefinder/internal/domain"
	"pokefinder/internal/ui/input/modes"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys modes.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{keys: modes.Keys}
}

var helpSections = []string{"Navigation", "Editing", "Submitting", "Other"}

// RenderHelpContent renders the help screen
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("pokefinder help"))
	help.WriteString("\n")

	writeKey := func(b key.Binding) {
		h := b.Help()
		help.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(runewidth.FillRight(h.Key, 10)),
			descStyle.Render(h.Desc)))
	}

	for i, group := range r.keys.FullHelp() {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(helpSections[i]))
		help.WriteString("\n")
		for _, b := range group {
			writeKey(b)
		}
	}

	help.WriteString("\n")
	help.WriteString(sectionStyle.Render("While editing"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(runewidth.FillRight("tab", 10)), descStyle.Render("accept suggestion")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(runewidth.FillRight("enter", 10)), descStyle.Render("apply")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(runewidth.FillRight("esc", 10)), descStyle.Render("cancel")))

	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Lists are separated by commas or spaces. Prefix a sort field with - to reverse it."))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Sort fields: " + columnIDs(domain.SortOptions)))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Fields: " + columnIDs(domain.Columns)))

	return help.String()
}

func columnIDs(columns []domain.Column) string {
	ids := make([]string, len(columns))
	for i, c := range columns {
		ids[i] = c.ID
	}
	return strings.Join(ids, " ")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
