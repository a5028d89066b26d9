package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokefinder/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeKeys(t *testing.T) {
	ctx := &ModelContext{Total: 8, FilterRow: true, Modes: true}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want types.Action
	}{
		{"down", runes("j"), types.NavigateAction{Direction: "down"}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, types.NavigateAction{Direction: "up"}},
		{"toggle", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, types.ToggleActiveAction{}},
		{"mode", runes("m"), types.CycleModeAction{}},
		{"flip", runes("-"), types.FlipSortAction{}},
		{"auto", runes("a"), types.ToggleAutoSubmitAction{}},
		{"refresh", runes("r"), types.RefreshAction{}},
		{"language", runes("L"), types.CycleLanguageAction{}},
		{"copy", runes("y"), types.CopyLinkAction{}},
		{"help", runes("?"), types.ToggleHelpAction{}},
		{"quit", runes("q"), types.QuitAction{}},
		{"force quit", tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			actions, _ := h.HandleKey(tt.msg, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, tt.want, actions[0])
		})
	}
}

func TestSubmitKeyDependsOnPending(t *testing.T) {
	h := New()
	ctrlS := tea.KeyMsg{Type: tea.KeyCtrlS}

	actions, _ := h.HandleKey(ctrlS, &ModelContext{Pending: true})
	assert.Equal(t, []types.Action{types.SubmitPendingAction{}}, actions)

	actions, _ = h.HandleKey(ctrlS, &ModelContext{})
	assert.Equal(t, []types.Action{types.RefreshAction{}}, actions)
}

func TestToggleIgnoredOffFilterRows(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, &ModelContext{Index: 6})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("m"), &ModelContext{FilterRow: true})
	assert.Empty(t, actions, "rows without modes ignore m")
}

func TestEditModeRoundTrip(t *testing.T) {
	h := New()
	ctx := &ModelContext{FilterRow: true, Text: "pur"}

	_, cmd := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModeEdit, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "pur", h.TextInput().Value())

	actions, _ := h.HandleKey(runes("p"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "purp"}}, actions)

	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "purpq"}}, actions, "q is text while editing")

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "purpq", Mode: types.ModeEdit}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestEditModeCancel(t *testing.T) {
	h := New()
	h.ChangeMode(types.ModeEdit, "grass")

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, &ModelContext{})
	assert.Equal(t, []types.Action{types.CancelTextAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHelpModeSwallowsKeys(t *testing.T) {
	h := New()
	h.ChangeMode(types.ModeHelp, "")

	actions, _ := h.HandleKey(runes("j"), &ModelContext{})
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeHelp, h.CurrentMode())

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, &ModelContext{})
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
