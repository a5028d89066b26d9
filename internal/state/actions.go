package state

import "pokefinder/internal/domain"

// Action type names
const (
	ActionSetFilter     = "SET_FILTER"
	ActionSetSort       = "SET_SORT"
	ActionSetFields     = "SET_FIELDS"
	ActionSetLanguages  = "SET_LANGUAGES"
	ActionSetAutoSubmit = "SET_AUTO_SUBMIT"
	ActionSubmitPending = "SUBMIT_PENDING"
	ActionClearPending  = "CLEAR_PENDING"
	ActionRefresh       = "REFRESH"
)

// Action is a request to transition the state
type Action interface {
	Type() string
}

// SetFilter replaces the whole filter of the search being edited
type SetFilter struct {
	Filter domain.Filter
}

func (a SetFilter) Type() string { return ActionSetFilter }

// SetSort replaces the sort list of the search being edited
type SetSort struct {
	Sort []domain.SortField
}

func (a SetSort) Type() string { return ActionSetSort }

// SetFields replaces the displayed columns of the search being edited
type SetFields struct {
	Fields []string
}

func (a SetFields) Type() string { return ActionSetFields }

// SetLanguages replaces the language preference list
type SetLanguages struct {
	Languages []string
}

func (a SetLanguages) Type() string { return ActionSetLanguages }

// SetAutoSubmit switches between applying edits immediately and staging them
type SetAutoSubmit struct {
	Value bool
}

func (a SetAutoSubmit) Type() string { return ActionSetAutoSubmit }

// SubmitPending promotes the pending draft to the current search
type SubmitPending struct{}

func (a SubmitPending) Type() string { return ActionSubmitPending }

// ClearPending discards the pending draft
type ClearPending struct{}

func (a ClearPending) Type() string { return ActionClearPending }

// Refresh asks for the current search to be fetched again
type Refresh struct{}

func (a Refresh) Type() string { return ActionRefresh }
