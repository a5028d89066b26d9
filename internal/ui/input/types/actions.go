package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end", "pageup", "pagedown"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for the edit mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search editing actions
type ToggleActiveAction struct{}

func (a ToggleActiveAction) Type() string { return "toggle_active" }

type CycleModeAction struct{}

func (a CycleModeAction) Type() string { return "cycle_mode" }

// FlipSortAction reverses the direction of the primary sort field
type FlipSortAction struct{}

func (a FlipSortAction) Type() string { return "flip_sort" }

type ToggleAutoSubmitAction struct{}

func (a ToggleAutoSubmitAction) Type() string { return "toggle_auto_submit" }

type SubmitPendingAction struct{}

func (a SubmitPendingAction) Type() string { return "submit_pending" }

type ClearPendingAction struct{}

func (a ClearPendingAction) Type() string { return "clear_pending" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type CycleLanguageAction struct{}

func (a CycleLanguageAction) Type() string { return "cycle_language" }

type CopyLinkAction struct{}

func (a CopyLinkAction) Type() string { return "copy_link" }

// ResetAction discards saved state and returns to the defaults
type ResetAction struct{}

func (a ResetAction) Type() string { return "reset" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
