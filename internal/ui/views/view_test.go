package views

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestColumnWidths(t *testing.T) {
	headers := []string{"#", "Species"}
	rows := [][]string{
		{"1", "Gloom"},
		{"12", strings.Repeat("x", 50)},
	}

	assert.Equal(t, []int{2, MaxCellWidth}, ColumnWidths(headers, rows))
}

func TestFormatRow(t *testing.T) {
	widths := []int{3, 6}

	assert.Equal(t, "1    Gloom", FormatRow([]string{"1", "Gloom"}, widths, 0))
	assert.Equal(t, "12   Ivysa…", FormatRow([]string{"12", "Ivysaur"}, widths, 0))
	assert.Equal(t, "", FormatRow(nil, widths, 0))

	clipped := FormatRow([]string{"1", "Gloom"}, widths, 6)
	assert.LessOrEqual(t, runewidth.StringWidth(clipped), 6)
	assert.True(t, strings.HasSuffix(clipped, "…"))
}

func baseState() ViewState {
	return ViewState{
		Width:      100,
		Height:     30,
		AutoSubmit: true,
		Languages:  []string{"es", "en"},
		Rows: []PanelRow{
			{Label: "Colour", Toggleable: true, Active: true, Value: "Purple"},
			{Label: "Weight", Toggleable: true, Mode: "greater than"},
			{Label: "Sort", Value: "Order ↑"},
		},
		Headers:   []string{"ID", "Weight"},
		Table:     [][]string{{"gloom", "8.6 kg"}, {"grimer", "30 kg"}},
		HasResult: true,
	}
}

func TestRenderPanelAndTable(t *testing.T) {
	out := NewRenderer().Render(baseState())

	assert.Contains(t, out, "pokefinder")
	assert.Contains(t, out, "auto-submit")
	assert.Contains(t, out, "ES/EN")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "greater than")
	assert.Contains(t, out, "Order ↑")
	assert.Contains(t, out, "grimer")
	assert.Contains(t, out, "2 pokémon")
	assert.NotContains(t, out, "PENDING")
	assert.NotContains(t, out, ReadyMarker)
}

func TestRenderPendingAndReady(t *testing.T) {
	state := baseState()
	state.AutoSubmit = false
	state.Pending = true
	state.ShowReady = true

	out := NewRenderer().Render(state)
	assert.Contains(t, out, "PENDING")
	assert.Contains(t, out, "manual submit")
	assert.Contains(t, out, ReadyMarker)
}

func TestRenderTableStates(t *testing.T) {
	r := NewRenderer()

	state := baseState()
	state.HasResult = false
	state.Loading = true
	assert.Contains(t, r.Render(state), "Looking for pokémon...")

	state.HasResult = true
	state.Loading = false
	state.Table = nil
	assert.Contains(t, r.Render(state), "No pokémon match this search.")

	state = baseState()
	for i := 0; i < 50; i++ {
		state.Table = append(state.Table, []string{"ditto", "4 kg"})
	}
	state.TableOffset = 5
	assert.Contains(t, r.Render(state), "rows 6-")
}

func TestRenderStatusAndEditing(t *testing.T) {
	state := baseState()
	state.StatusMessage = "weight must be a number"
	state.StatusIsError = true
	state.Editing = true
	state.EditLabel = "Weight"
	state.TextInput = "abc"

	out := NewRenderer().Render(state)
	assert.Contains(t, out, "weight must be a number")
	assert.Contains(t, out, "Weight: ")
	assert.NotContains(t, out, "2 pokémon")
}

func TestRenderHelpOverlay(t *testing.T) {
	state := baseState()
	state.ShowHelp = true
	state.HelpContent = "pokefinder help\n\nq  quit"

	out := NewRenderer().Render(state)
	assert.Contains(t, out, "pokefinder help")
	assert.NotContains(t, out, "grimer")
}
