package logic

import (
	"pokefinder/internal/domain"
	"pokefinder/internal/state"
)

// StateStore provides access to the application state
type StateStore interface {
	State() state.State
	Dispatch(action state.Action) state.State
	Subscribe(listener Listener) func()
}

// Listener is called after every transition with the old and new state
type Listener func(prev, next state.State)

// Publisher receives the store's domain events
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// Persist targets reported in PersistFailedEvent
const (
	TargetURL     = "url"
	TargetStorage = "storage"
)
