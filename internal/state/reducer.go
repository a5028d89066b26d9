package state

import (
	"fmt"
	"slices"

	"pokefinder/internal/domain"
)

// InvalidActionError is the panic value raised when Reduce receives an
// action outside its vocabulary
type InvalidActionError struct {
	Action Action
}

func (e InvalidActionError) Error() string {
	if e.Action == nil {
		return "invalid action: <nil>"
	}
	return fmt.Sprintf("invalid action %q (%T)", e.Action.Type(), e.Action)
}

// Reduce returns the state that results from applying action to s. It never
// modifies s. Unknown actions panic with InvalidActionError.
func Reduce(s State, action Action) State {
	next := s.Clone()

	switch a := action.(type) {
	case SetFilter:
		return next.edit(func(search domain.Search) domain.Search {
			return search.WithFilter(a.Filter)
		})

	case SetSort:
		return next.edit(func(search domain.Search) domain.Search {
			return search.WithSort(a.Sort)
		})

	case SetFields:
		return next.edit(func(search domain.Search) domain.Search {
			return search.WithFields(a.Fields)
		})

	case SetLanguages:
		next.Languages = slices.Clone(a.Languages)
		return next

	case SetAutoSubmit:
		// Pending is kept as is; the user submits or clears it explicitly.
		next.AutoSubmit = a.Value
		return next

	case SubmitPending:
		if next.Search.Pending == nil {
			return next
		}
		next.Search.Current = *next.Search.Pending
		next.Search.Pending = nil
		return next

	case ClearPending:
		next.Search.Pending = nil
		return next

	case Refresh:
		next.RefreshCounter++
		return next
	}

	panic(InvalidActionError{Action: action})
}

// edit applies fn to the current search in auto-submit mode and to the
// pending draft otherwise, creating the draft from current when absent
func (s State) edit(fn func(domain.Search) domain.Search) State {
	if s.AutoSubmit {
		s.Search.Current = fn(s.Search.Current)
		return s
	}
	base := s.Search.Current
	if s.Search.Pending != nil {
		base = *s.Search.Pending
	}
	pending := fn(base)
	s.Search.Pending = &pending
	return s
}
