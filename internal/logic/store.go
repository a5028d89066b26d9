package logic

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"pokefinder/internal/codec"
	"pokefinder/internal/domain"
	"pokefinder/internal/persist"
	"pokefinder/internal/state"
)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger persistence failures are written to
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log.With().Str("component", "store").Logger()
	}
}

// WithPublisher makes the store publish domain events on p
func WithPublisher(p Publisher) Option {
	return func(s *Store) {
		s.bus = p
	}
}

// Store owns the application state. Every dispatch runs the reducer, then
// writes the new state through to the query string and local storage.
// Persistence is best effort: failures are logged and published, never
// returned.
type Store struct {
	mu        sync.RWMutex
	state     state.State
	listeners map[uint64]Listener
	nextID    uint64

	persistMu sync.Mutex
	defaults  state.State
	url       persist.Port
	storage   persist.Storage
	log       zerolog.Logger
	bus       Publisher
}

// NewStore builds the initial state. The record in storage, if any, is
// applied over defaults; a non-empty url is then unflattened over that, so a
// link decides which filters are active while stored payloads and modes
// survive for the filters it leaves out. With nothing saved anywhere the
// defaults are used as they are.
func NewStore(defaults state.State, url persist.Port, storage persist.Storage, opts ...Option) *Store {
	s := &Store{
		listeners: make(map[uint64]Listener),
		defaults:  defaults.Clone(),
		url:       url,
		storage:   storage,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	initial := defaults.Clone()
	rec, stored := s.loadStorage()
	if stored {
		initial = codec.FromRecord(initial, rec)
	}
	fromURL := s.loadURL()
	if len(fromURL) > 0 {
		initial = codec.Unflatten(initial, fromURL)
	}
	s.state = initial
	s.log.Debug().Bool("stored", stored).Int("url_keys", len(fromURL)).Msg("state initialised")

	s.persist(s.state)
	return s
}

// State returns a snapshot of the current state
func (s *Store) State() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies action and returns the resulting state
func (s *Store) Dispatch(action state.Action) state.State {
	prev, next, listeners := s.transition(action)

	s.log.Debug().Str("action", action.Type()).Msg("dispatched")

	s.persist(next)
	s.notify(listeners, prev, next)
	s.publish(action, prev, next)
	return next.Clone()
}

// transition runs the reducer under mu. A panicking reducer leaves the
// state untouched and the lock released.
func (s *Store) transition(action state.Action) (prev, next state.State, listeners []Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.state
	next = state.Reduce(prev, action)
	s.state = next
	return prev, next, s.snapshotListeners()
}

// Subscribe registers listener for every transition. The returned function
// removes it.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Reset erases local storage and returns to the default state. The query
// string is rewritten to match.
func (s *Store) Reset() state.State {
	if c, ok := s.storage.(persist.Clearer); ok {
		if err := c.Clear(); err != nil {
			s.failed(TargetStorage, err)
		}
	}

	s.mu.Lock()
	prev := s.state
	next := s.defaults.Clone()
	next.RefreshCounter = prev.RefreshCounter
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.persistMu.Lock()
	if err := s.url.Save(codec.Flatten(next)); err != nil {
		s.failed(TargetURL, err)
	}
	s.persistMu.Unlock()

	s.notify(listeners, prev, next)
	s.publish(nil, prev, next)
	return next.Clone()
}

// Close releases the storage port
func (s *Store) Close() error {
	if c, ok := s.storage.(persist.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) loadURL() codec.Flat {
	flat, err := s.url.Load()
	if err != nil {
		s.unreadable(TargetURL, err)
		return codec.Flat{}
	}
	return flat
}

func (s *Store) loadStorage() (codec.Record, bool) {
	rec, err := s.storage.Load()
	if err != nil {
		s.unreadable(TargetStorage, err)
		return codec.Record{}, false
	}
	return rec, true
}

func (s *Store) unreadable(target string, err error) {
	if errors.Is(err, persist.ErrNotFound) {
		return
	}
	s.log.Warn().Err(err).Str("target", target).Msg("ignoring unreadable saved state")
}

func (s *Store) persist(st state.State) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.url.Save(codec.Flatten(st)); err != nil {
		s.failed(TargetURL, err)
	}
	if err := s.storage.Save(codec.ToRecord(st)); err != nil {
		s.failed(TargetStorage, err)
	}
}

func (s *Store) failed(target string, err error) {
	s.log.Error().Err(err).Str("target", target).Msg("failed to persist state")
	if s.bus != nil {
		s.bus.Publish(domain.PersistFailedEvent{Target: target, Err: err})
	}
}

// snapshotListeners must be called with mu held
func (s *Store) snapshotListeners() []Listener {
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func (s *Store) notify(listeners []Listener, prev, next state.State) {
	for _, l := range listeners {
		l(prev.Clone(), next.Clone())
	}
}

func (s *Store) publish(action state.Action, prev, next state.State) {
	if s.bus == nil {
		return
	}
	if !prev.Search.Current.Equal(next.Search.Current) {
		s.bus.Publish(domain.SearchSubmittedEvent{
			Search:    next.Search.Current.Clone(),
			Languages: slices.Clone(next.Languages),
		})
	}
	if !slices.Equal(prev.Languages, next.Languages) {
		s.bus.Publish(domain.LanguagesChangedEvent{Languages: slices.Clone(next.Languages)})
	}
	if prev.AutoSubmit != next.AutoSubmit {
		s.bus.Publish(domain.AutoSubmitChangedEvent{AutoSubmit: next.AutoSubmit})
	}
	if _, ok := action.(state.Refresh); ok {
		s.bus.Publish(domain.RefreshRequestedEvent{Counter: next.RefreshCounter})
	}
}

var _ StateStore = (*Store)(nil)
