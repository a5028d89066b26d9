package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const panelLabelWidth = 14

// renderPanel renders the settings rows, highlighting the selected one
func (r *Renderer) renderPanel(state ViewState) string {
	lines := make([]string, 0, len(state.Rows))
	for i, row := range state.Rows {
		lines = append(lines, r.renderPanelRow(row, i == state.SelectedIndex))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderPanelRow(row PanelRow, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	box := "   "
	if row.Toggleable {
		box = "[ ]"
		if row.Active {
			box = "[x]"
		}
	}

	label := runewidth.FillRight(row.Label, panelLabelWidth)
	value := row.Value
	if value == "" {
		value = "-"
	}

	var line string
	if row.Toggleable && !row.Active {
		parts := []string{label}
		if row.Mode != "" {
			parts = append(parts, row.Mode)
		}
		parts = append(parts, value)
		line = fmt.Sprintf("%s%s %s", cursor, box, r.styles.Inactive.Render(strings.Join(parts, " ")))
	} else {
		styled := r.styles.Label.Render(label)
		if row.Mode != "" {
			styled += " " + r.styles.Mode.Render(row.Mode)
		}
		styled += " " + r.styles.Value.Render(value)
		line = fmt.Sprintf("%s%s %s", cursor, box, styled)
	}

	if selected {
		return r.styles.HighlightBg.Render(line)
	}
	return line
}
