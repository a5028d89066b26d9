package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokefinder/internal/domain"
	"pokefinder/internal/state"
)

func TestFlattenDefaultState(t *testing.T) {
	assert.Equal(t, Flat{
		"sort":   "order",
		"fields": "veekun_species_image-fd_type_generation",
		"lang":   "en",
		"color":  "purple",
		"type":   "all_of~poison",
	}, Flatten(state.DefaultState()))
}

func TestFlattenOmitsInactiveFilters(t *testing.T) {
	s := state.DefaultState()
	s.Search.Current.Filter.Color = domain.NewString(false, "purple")

	flat := Flatten(s)
	assert.NotContains(t, flat, "color")
	assert.NotContains(t, flat, "species")
	assert.NotContains(t, flat, "weight")
}

func TestFlattenActiveEmptyValue(t *testing.T) {
	s := state.DefaultState()
	s.Search.Current.Filter.Shape = domain.NewString(true, "")
	s.Search.Current.Filter.Species = domain.NewStringMatch(true, "", domain.StringContains)

	flat := Flatten(s)
	assert.Equal(t, "", flat["shape"])
	assert.Contains(t, flat, "shape")
	assert.Equal(t, "contains~", flat["species"])
}

func TestFlattenSortDirections(t *testing.T) {
	s := state.DefaultState()
	s.Search.Current.Sort = []domain.SortField{{ID: "weight", Reverse: true}, {ID: "order"}}
	assert.Equal(t, "-weight_order", Flatten(s)["sort"])
}

func TestUnflattenRoundTrip(t *testing.T) {
	base := state.DefaultState()

	tests := []struct {
		name   string
		modify func(s *state.State)
	}{
		{"default", func(s *state.State) {}},
		{"weight and species", func(s *state.State) {
			s.Search.Current.Filter.Weight = domain.NewNumberMatch(true, domain.FloatPtr(10), domain.NumberGreaterThan)
			s.Search.Current.Filter.Species = domain.NewStringMatch(true, "char", domain.StringStartsWith)
		}},
		{"sort and fields", func(s *state.State) {
			s.Search.Current.Sort = []domain.SortField{{ID: "height", Reverse: true}, {ID: "order"}}
			s.Search.Current.Fields = []string{"idName", "weight", "height"}
		}},
		{"active empty values", func(s *state.State) {
			s.Search.Current.Filter.Generation = domain.NewString(true, "")
			s.Search.Current.Filter.Type = domain.NewArrayMatch(true, nil, domain.ArrayExactly)
		}},
		{"languages", func(s *state.State) {
			s.Languages = []string{"ja-Hrkt", "en"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base.Clone()
			tt.modify(&s)

			got := Unflatten(base, Flatten(s))
			assert.True(t, s.Search.Current.Equal(got.Search.Current), "got %#v", got.Search.Current)
			assert.Equal(t, s.Languages, got.Languages)
		})
	}
}

func TestUnflattenEmptyRecord(t *testing.T) {
	base := state.DefaultState()
	got := Unflatten(base, Flat{})

	def := state.DefaultSearch()
	assert.Equal(t, def.Fields, got.Search.Current.Fields)
	assert.Equal(t, def.Sort, got.Search.Current.Sort)
	assert.Empty(t, got.Search.Current.Filter.ActiveKeys())
	assert.Equal(t, "purple", got.Search.Current.Filter.Color.String(), "payload kept from template")
	assert.Equal(t, []string{"en"}, got.Languages)
}

func TestUnflattenDropsUnknownIdentifiers(t *testing.T) {
	got := Unflatten(state.DefaultState(), Flat{
		"sort":   "bogus_-weight_weight",
		"fields": "idName_nope_idName_height",
		"lang":   "xx_de",
	})
	assert.Equal(t, []domain.SortField{{ID: "weight", Reverse: true}}, got.Search.Current.Sort)
	assert.Equal(t, []string{"idName", "height"}, got.Search.Current.Fields)
	assert.Equal(t, []string{"de"}, got.Languages)
}

func TestUnflattenInvalidListsFallBack(t *testing.T) {
	got := Unflatten(state.DefaultState(), Flat{"sort": "nope", "fields": "__", "lang": "zz"})
	assert.Equal(t, state.DefaultSearch().Sort, got.Search.Current.Sort)
	assert.Equal(t, state.DefaultFields, got.Search.Current.Fields)
	assert.Equal(t, []string{"en"}, got.Languages)
}

func TestUnflattenFallsBackToTemplateCurrent(t *testing.T) {
	base := state.DefaultState()
	base.Search.Current.Sort = []domain.SortField{{ID: "weight", Reverse: true}}
	base.Search.Current.Fields = []string{"idName"}
	base.Search.Current.Filter.Weight = domain.NewNumberMatch(false, domain.FloatPtr(10), domain.NumberLessThan)

	got := Unflatten(base, Flat{"sort": "nope", "weight": "greater_than~oops"})
	assert.Equal(t, base.Search.Current.Sort, got.Search.Current.Sort)
	assert.Equal(t, []string{"idName"}, got.Search.Current.Fields)

	w := got.Search.Current.Filter.Weight
	assert.True(t, w.Active)
	assert.Equal(t, domain.NumberLessThan, w.Mode)
	require.NotNil(t, w.Number)
	assert.Equal(t, 10.0, *w.Number)
}

func TestUnflattenKeepsTemplateBookkeeping(t *testing.T) {
	base := state.Reduce(state.DefaultState(), state.SetAutoSubmit{Value: false})
	base = state.Reduce(base, state.SetFields{Fields: []string{"idName"}})
	base = state.Reduce(base, state.Refresh{})

	got := Unflatten(base, Flat{"color": "red"})
	require.NotNil(t, got.Search.Pending)
	assert.Equal(t, []string{"idName"}, got.Search.Pending.Fields)
	assert.False(t, got.AutoSubmit)
	assert.Equal(t, uint64(1), got.RefreshCounter)
	assert.Equal(t, "red", got.Search.Current.Filter.Color.String())
	assert.True(t, got.Search.Current.Filter.Color.Active)
}

func TestUnflattenMalformedFilterUsesTemplatePayload(t *testing.T) {
	got := Unflatten(state.DefaultState(), Flat{"weight": "heavy~12"})
	w := got.Search.Current.Filter.Weight
	assert.True(t, w.Active)
	assert.Equal(t, domain.NumberGreaterThan, w.Mode)
	assert.Nil(t, w.Number)
}

func TestQueryStringConversion(t *testing.T) {
	flat := Flatten(state.DefaultState())
	encoded := Encode(flat)
	assert.Equal(t, "color=purple&fields=veekun_species_image-fd_type_generation&lang=en&sort=order&type=all_of~poison", encoded)
	assert.Equal(t, flat, Parse(encoded))
	assert.Equal(t, flat, Parse("https://example.test/?"+encoded+"#top"))
}

func TestParseGarbage(t *testing.T) {
	assert.Empty(t, Parse("%zz=%%"))
	assert.Empty(t, Parse(""))
	assert.Equal(t, Flat{"shape": ""}, Parse("?shape="))
}
