package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxCellWidth caps a column's display width; longer cells are truncated
const MaxCellWidth = 36

const columnGap = "  "

// ColumnWidths returns the display width of every column: the widest of its
// header and cells, capped at MaxCellWidth
func ColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				if w := runewidth.StringWidth(row[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	for i, w := range widths {
		if w > MaxCellWidth {
			widths[i] = MaxCellWidth
		}
	}
	return widths
}

// FormatRow pads or truncates each cell to its column width and clips the
// joined line to maxWidth
func FormatRow(cells []string, widths []int, maxWidth int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = runewidth.Truncate(cell, w, "…")
		parts[i] = runewidth.FillRight(cell, w)
	}
	line := strings.TrimRight(strings.Join(parts, columnGap), " ")
	if maxWidth > 0 && runewidth.StringWidth(line) > maxWidth {
		line = runewidth.Truncate(line, maxWidth, "…")
	}
	return line
}

func (r *Renderer) renderTable(state ViewState, width, height int) string {
	if !state.HasResult {
		if state.Loading {
			return r.styles.Dim.Render("Looking for pokémon...")
		}
		return r.styles.Dim.Render("No results yet.")
	}
	if len(state.Table) == 0 {
		return r.styles.Dim.Render("No pokémon match this search.")
	}

	widths := ColumnWidths(state.Headers, state.Table)
	lines := []string{r.styles.Header.Render(FormatRow(state.Headers, widths, width))}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	offset := state.TableOffset
	if offset > len(state.Table)-1 {
		offset = len(state.Table) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(state.Table) {
		end = len(state.Table)
	}

	for _, row := range state.Table[offset:end] {
		lines = append(lines, FormatRow(row, widths, width))
	}

	if offset > 0 || end < len(state.Table) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("rows %d-%d of %d", offset+1, end, len(state.Table))))
	}
	return strings.Join(lines, "\n")
}
