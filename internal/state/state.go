package state

import (
	"slices"

	"pokefinder/internal/domain"
)

// Searches holds the three search configurations the app tracks.
// Current drives the query. Pending is a draft staged in manual-submit mode
// and is nil when there is nothing to submit. Default is what a reset
// restores.
type Searches struct {
	Current domain.Search
	Pending *domain.Search
	Default domain.Search
}

// State is the complete application state. Values are never mutated in
// place; every transition builds a new State.
type State struct {
	Languages      []string
	AutoSubmit     bool
	Search         Searches
	RefreshCounter uint64
}

// DefaultFields are the columns shown on first launch
var DefaultFields = []string{"veekun", "species", "image-fd", "type", "generation"}

// DefaultSearch returns the hard-coded initial search
func DefaultSearch() domain.Search {
	return domain.Search{
		Fields: slices.Clone(DefaultFields),
		Sort:   []domain.SortField{{ID: "order"}},
		Filter: domain.Filter{
			Color:      domain.NewString(true, "purple"),
			Generation: domain.NewString(false, ""),
			Shape:      domain.NewString(false, ""),
			Species:    domain.NewStringMatch(false, "", domain.StringContains),
			Type:       domain.NewArrayMatch(true, []string{"poison"}, domain.ArrayAllOf),
			Weight:     domain.NewNumberMatch(false, nil, domain.NumberGreaterThan),
		},
	}
}

// DefaultState returns the state used when nothing has been persisted
func DefaultState() State {
	return State{
		Languages:  []string{domain.FallbackLanguage},
		AutoSubmit: true,
		Search: Searches{
			Current: DefaultSearch(),
			Default: DefaultSearch(),
		},
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	next := State{
		Languages:      slices.Clone(s.Languages),
		AutoSubmit:     s.AutoSubmit,
		RefreshCounter: s.RefreshCounter,
		Search: Searches{
			Current: s.Search.Current.Clone(),
			Default: s.Search.Default.Clone(),
		},
	}
	if s.Search.Pending != nil {
		p := s.Search.Pending.Clone()
		next.Search.Pending = &p
	}
	return next
}

// Editing returns the search edits apply to: the pending draft when one
// exists in manual-submit mode, otherwise the current search
func (s State) Editing() domain.Search {
	if !s.AutoSubmit && s.Search.Pending != nil {
		return *s.Search.Pending
	}
	return s.Search.Current
}

// HasPending reports whether a draft is waiting to be submitted
func (s State) HasPending() bool {
	return s.Search.Pending != nil
}

// PrimaryLanguage is the first preferred language
func (s State) PrimaryLanguage() string {
	if len(s.Languages) == 0 {
		return domain.FallbackLanguage
	}
	return s.Languages[0]
}

func (s State) Equal(other State) bool {
	if !slices.Equal(s.Languages, other.Languages) ||
		s.AutoSubmit != other.AutoSubmit ||
		s.RefreshCounter != other.RefreshCounter ||
		!s.Search.Current.Equal(other.Search.Current) ||
		!s.Search.Default.Equal(other.Search.Default) {
		return false
	}
	if s.Search.Pending == nil || other.Search.Pending == nil {
		return s.Search.Pending == nil && other.Search.Pending == nil
	}
	return s.Search.Pending.Equal(*other.Search.Pending)
}
