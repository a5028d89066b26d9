package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted   EventType = "SearchSubmitted"
	EventRefreshRequested  EventType = "RefreshRequested"
	EventPersistFailed     EventType = "PersistFailed"
	EventLanguagesChanged  EventType = "LanguagesChanged"
	EventAutoSubmitChanged EventType = "AutoSubmitChanged"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when the current search changes
type SearchSubmittedEvent struct {
	Search    Search
	Languages []string
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// RefreshRequestedEvent is emitted when the user asks to re-run the current search
type RefreshRequestedEvent struct {
	Counter uint64
}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// PersistFailedEvent is emitted when a state snapshot could not be written
type PersistFailedEvent struct {
	Target string // "url" or "storage"
	Err    error
}

func (e PersistFailedEvent) Type() EventType { return EventPersistFailed }

// LanguagesChangedEvent is emitted when the result language preference changes
type LanguagesChangedEvent struct {
	Languages []string
}

func (e LanguagesChangedEvent) Type() EventType { return EventLanguagesChanged }

// AutoSubmitChangedEvent is emitted when edits switch between applying
// immediately and staging into a pending search
type AutoSubmitChangedEvent struct {
	AutoSubmit bool
}

func (e AutoSubmitChangedEvent) Type() EventType { return EventAutoSubmitChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
