package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pokefinder/internal/ui/input/types"
)

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: Keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, k.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, k.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, k.Toggle):
		// Only filters carry an active flag
		if ctx.OnFilterRow() {
			return []types.Action{types.ToggleActiveAction{}}, true
		}
		return nil, false

	case key.Matches(msg, k.Edit):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEdit, Data: ctx.EditText()}}, true

	case key.Matches(msg, k.Mode):
		if ctx.HasModes() {
			return []types.Action{types.CycleModeAction{}}, true
		}
		return nil, false

	case key.Matches(msg, k.FlipSort):
		return []types.Action{types.FlipSortAction{}}, true

	case key.Matches(msg, k.AutoSubmit):
		return []types.Action{types.ToggleAutoSubmitAction{}}, true

	case key.Matches(msg, k.Submit):
		// With nothing pending, submitting re-runs the current search
		if ctx.HasPending() {
			return []types.Action{types.SubmitPendingAction{}}, true
		}
		return []types.Action{types.RefreshAction{}}, true

	case key.Matches(msg, k.Clear):
		if ctx.HasPending() {
			return []types.Action{types.ClearPendingAction{}}, true
		}
		return nil, false

	case key.Matches(msg, k.Refresh):
		return []types.Action{types.RefreshAction{}}, true

	case key.Matches(msg, k.Language):
		return []types.Action{types.CycleLanguageAction{}}, true

	case key.Matches(msg, k.Copy):
		return []types.Action{types.CopyLinkAction{}}, true

	case key.Matches(msg, k.Reset):
		return []types.Action{types.ResetAction{}}, true

	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
