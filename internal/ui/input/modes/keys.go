package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the normal mode bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Home       key.Binding
	End        key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Mode       key.Binding
	FlipSort   key.Binding
	AutoSubmit key.Binding
	Submit     key.Binding
	Clear      key.Binding
	Refresh    key.Binding
	Language   key.Binding
	Copy       key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "scroll results up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "scroll results down")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle filter")),
	Edit:       key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "match mode")),
	FlipSort:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "flip sort")),
	AutoSubmit: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-submit")),
	Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard pending")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Language:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
	Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Mode, k.AutoSubmit, k.Submit, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped for the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown},
		{k.Toggle, k.Edit, k.Mode, k.FlipSort},
		{k.AutoSubmit, k.Submit, k.Clear, k.Refresh},
		{k.Language, k.Copy, k.Reset, k.Help, k.Quit},
	}
}
