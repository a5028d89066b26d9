package logic

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokefinder/internal/codec"
	"pokefinder/internal/domain"
	"pokefinder/internal/persist"
	"pokefinder/internal/state"
)

// memoryPort is an in-memory query string
type memoryPort struct {
	flat    codec.Flat
	loadErr error
}

func (m *memoryPort) Load() (codec.Flat, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.flat.Clone(), nil
}

func (m *memoryPort) Save(flat codec.Flat) error {
	m.flat = flat.Clone()
	return nil
}

// memoryStorage is an in-memory persist.Storage that can be told to fail
type memoryStorage struct {
	rec     *codec.Record
	loadErr error
	saveErr error
	saves   int
	cleared bool
}

func (m *memoryStorage) Load() (codec.Record, error) {
	if m.loadErr != nil {
		return codec.Record{}, m.loadErr
	}
	if m.rec == nil {
		return codec.Record{}, persist.ErrNotFound
	}
	return *m.rec, nil
}

func (m *memoryStorage) Save(rec codec.Record) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rec = &rec
	return nil
}

func (m *memoryStorage) Clear() error {
	m.cleared = true
	m.rec = nil
	return nil
}

type bogusAction struct{}

func (bogusAction) Type() string { return "BOGUS" }

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (r *recordingPublisher) Publish(e domain.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingPublisher) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.EventType
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func TestNewStoreUsesDefaultsWhenNothingSaved(t *testing.T) {
	url, storage := &memoryPort{}, &memoryStorage{}
	s := NewStore(state.DefaultState(), url, storage)

	assert.True(t, state.DefaultState().Equal(s.State()))
	assert.Equal(t, "purple", url.flat["color"], "initial state is written through")
	require.NotNil(t, storage.rec)
	require.NotNil(t, storage.rec.AutoSubmit)
	assert.True(t, *storage.rec.AutoSubmit)
}

func TestNewStorePrecedence(t *testing.T) {
	saved := state.DefaultState()
	saved.AutoSubmit = false
	saved.Search.Current.Sort = []domain.SortField{{ID: "weight", Reverse: true}}
	saved.Search.Current.Filter.Color = domain.NewString(true, "red")
	rec := codec.ToRecord(saved)
	storage := &memoryStorage{rec: &rec}
	url := &memoryPort{flat: codec.Flat{"color": "blue", "fields": "idName"}}

	got := NewStore(state.DefaultState(), url, storage).State()

	f := got.Search.Current.Filter
	assert.Equal(t, "blue", f.Color.String())
	assert.True(t, f.Color.Active)
	assert.False(t, f.Type.Active, "type is not in the link")
	assert.Equal(t, []domain.SortField{{ID: "weight", Reverse: true}}, got.Search.Current.Sort)
	assert.Equal(t, []string{"idName"}, got.Search.Current.Fields)
	assert.False(t, got.AutoSubmit)
}

func TestNewStoreIgnoresUnreadableStorage(t *testing.T) {
	storage := &memoryStorage{loadErr: errors.New("disk on fire")}
	s := NewStore(state.DefaultState(), &memoryPort{}, storage)
	assert.True(t, state.DefaultState().Equal(s.State()))
}

func TestDispatchWritesThrough(t *testing.T) {
	url, storage := &memoryPort{}, &memoryStorage{}
	s := NewStore(state.DefaultState(), url, storage)

	s.Dispatch(state.SetFields{Fields: []string{"idName", "weight"}})
	assert.Equal(t, "idName_weight", url.flat["fields"])
	require.NotNil(t, storage.rec)
	assert.Equal(t, []string{"idName", "weight"}, storage.rec.Fields)
	assert.NotContains(t, url.flat, "auto")

	s.Dispatch(state.SetAutoSubmit{Value: false})
	require.NotNil(t, storage.rec.AutoSubmit)
	assert.False(t, *storage.rec.AutoSubmit)
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{}
	storage := &memoryStorage{saveErr: errors.New("read-only")}
	s := NewStore(state.DefaultState(), &memoryPort{}, storage, WithPublisher(pub))

	next := s.Dispatch(state.Refresh{})
	assert.Equal(t, uint64(1), next.RefreshCounter)
	assert.Equal(t, uint64(1), s.State().RefreshCounter)
	assert.Contains(t, pub.types(), domain.EventPersistFailed)
}

func TestDispatchPublishesEvents(t *testing.T) {
	pub := &recordingPublisher{}
	s := NewStore(state.DefaultState(), &memoryPort{}, &memoryStorage{}, WithPublisher(pub))

	s.Dispatch(state.SetAutoSubmit{Value: false})
	s.Dispatch(state.SetFields{Fields: []string{"idName"}})
	s.Dispatch(state.SubmitPending{})
	s.Dispatch(state.SetLanguages{Languages: []string{"de", "en"}})
	s.Dispatch(state.Refresh{})

	assert.Equal(t, []domain.EventType{
		domain.EventAutoSubmitChanged,
		domain.EventSearchSubmitted,
		domain.EventLanguagesChanged,
		domain.EventRefreshRequested,
	}, pub.types())
}

func TestSubscribe(t *testing.T) {
	s := NewStore(state.DefaultState(), &memoryPort{}, &memoryStorage{})

	var calls []uint64
	unsubscribe := s.Subscribe(func(prev, next state.State) {
		calls = append(calls, next.RefreshCounter-prev.RefreshCounter)
	})
	s.Dispatch(state.Refresh{})
	unsubscribe()
	s.Dispatch(state.Refresh{})

	assert.Equal(t, []uint64{1}, calls)
}

func TestReset(t *testing.T) {
	url, storage := &memoryPort{}, &memoryStorage{}
	s := NewStore(state.DefaultState(), url, storage)
	s.Dispatch(state.SetFields{Fields: []string{"idName"}})
	s.Dispatch(state.Refresh{})

	got := s.Reset()
	assert.True(t, storage.cleared)
	assert.Nil(t, storage.rec)
	assert.Equal(t, state.DefaultFields, got.Search.Current.Fields)
	assert.Equal(t, uint64(1), got.RefreshCounter)
	assert.Equal(t, "veekun_species_image-fd_type_generation", url.flat["fields"])
}

func TestStateSnapshotsAreIndependent(t *testing.T) {
	s := NewStore(state.DefaultState(), &memoryPort{}, &memoryStorage{})
	snap := s.State()
	snap.Search.Current.Fields[0] = "mutated"
	assert.Equal(t, "veekun", s.State().Search.Current.Fields[0])
}

func TestRestartKeepsInactiveFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first := NewStore(state.DefaultState(), persist.NewQueryString(""), persist.NewFileStorage(path))
	f := first.State().Search.Current.Filter
	f.Weight = domain.NewNumberMatch(true, domain.FloatPtr(10), domain.NumberGreaterThan)
	f.Species = domain.NewStringMatch(true, "bulba", domain.StringStartsWith)
	first.Dispatch(state.SetFilter{Filter: f})

	f.Weight = domain.NewNumberMatch(false, domain.FloatPtr(10), domain.NumberGreaterThan)
	f.Species = domain.NewStringMatch(false, "bulba", domain.StringStartsWith)
	first.Dispatch(state.SetFilter{Filter: f})
	require.NoError(t, first.Close())

	second := NewStore(state.DefaultState(), persist.NewQueryString(""), persist.NewFileStorage(path))
	got := second.State().Search.Current.Filter

	assert.False(t, got.Weight.Active)
	require.NotNil(t, got.Weight.Number)
	assert.Equal(t, 10.0, *got.Weight.Number)
	assert.Equal(t, domain.NumberGreaterThan, got.Weight.Mode)

	assert.False(t, got.Species.Active)
	assert.Equal(t, "bulba", got.Species.TextString())
	assert.Equal(t, domain.StringStartsWith, got.Species.Mode)
}

func TestRestartWithLinkKeepsStoredPayloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first := NewStore(state.DefaultState(), persist.NewQueryString(""), persist.NewFileStorage(path))
	f := first.State().Search.Current.Filter
	f.Weight = domain.NewNumberMatch(false, domain.FloatPtr(10), domain.NumberLessThan)
	first.Dispatch(state.SetFilter{Filter: f})

	second := NewStore(state.DefaultState(), persist.NewQueryString("?color=blue"), persist.NewFileStorage(path))
	got := second.State().Search.Current.Filter

	assert.Equal(t, "blue", got.Color.String())
	assert.False(t, got.Weight.Active)
	require.NotNil(t, got.Weight.Number)
	assert.Equal(t, 10.0, *got.Weight.Number)
	assert.Equal(t, domain.NumberLessThan, got.Weight.Mode)
}

func TestDispatchRecoversFromPanickingReducer(t *testing.T) {
	s := NewStore(state.DefaultState(), &memoryPort{}, &memoryStorage{})

	assert.Panics(t, func() { s.Dispatch(bogusAction{}) })

	done := make(chan state.State, 1)
	go func() { done <- s.Dispatch(state.Refresh{}) }()
	select {
	case next := <-done:
		assert.Equal(t, uint64(1), next.RefreshCounter)
	case <-time.After(time.Second):
		t.Fatal("store is still locked after a panicking dispatch")
	}
}
