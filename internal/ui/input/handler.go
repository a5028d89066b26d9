package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pokefinder/internal/ui/input/modes"
	"pokefinder/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.ShowSuggestions = true
	ti.CharLimit = 256

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeEdit] = modes.NewEditMode(h.textInput)
	h.modes[types.ModeHelp] = modes.NewHelpMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// Unconsumed keys only matter to the text input
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		if exitCmd := h.switchMode(changeMode, ctx, &allActions); exitCmd != nil {
			cmd = exitCmd
		}
	}

	// In a text mode, keys the mode did not handle go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context, out *[]types.Action) tea.Cmd {
	if current := h.modes[h.currentMode]; current != nil {
		*out = append(*out, current.Exit(ctx)...)
	}

	h.currentMode = change.Mode

	if next := h.modes[h.currentMode]; next != nil {
		*out = append(*out, next.Enter(ctx)...)
	}

	if h.isTextMode(h.currentMode) {
		h.textInput.SetValue(change.Data)
		h.textInput.CursorEnd()
		h.textInput.Focus()
		return textinput.Blink
	}
	h.textInput.Blur()
	return nil
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// SetSuggestions replaces the completions offered by the text input
func (h *Handler) SetSuggestions(suggestions []string) {
	h.textInput.SetSuggestions(suggestions)
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeEdit
}

// ChangeMode switches mode outside of key handling
func (h *Handler) ChangeMode(mode types.Mode, data string) {
	var discard []types.Action
	h.switchMode(types.ChangeModeAction{Mode: mode, Data: data}, nil, &discard)
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
