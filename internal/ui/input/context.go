package input

// ModelContext implements the Context interface for the input handler. The
// model fills it in from its state before every key.
type ModelContext struct {
	Index     int
	Total     int
	FilterRow bool
	Modes     bool
	Pending   bool
	Text      string
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalRows returns the number of panel rows
func (c *ModelContext) TotalRows() int {
	return c.Total
}

func (c *ModelContext) OnFilterRow() bool {
	return c.FilterRow
}

func (c *ModelContext) HasModes() bool {
	return c.Modes
}

func (c *ModelContext) HasPending() bool {
	return c.Pending
}

func (c *ModelContext) EditText() string {
	return c.Text
}
