package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeHelp:
		return "help"
	default:
		return "normal"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentIndex() int
	TotalRows() int
	// OnFilterRow reports whether the cursor is on one of the filter rows
	OnFilterRow() bool
	// HasModes reports whether the row under the cursor has a match mode
	HasModes() bool
	HasPending() bool
	// EditText is the initial text offered when editing the current row
	EditText() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
