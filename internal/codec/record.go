package codec

import (
	"slices"

	"pokefinder/internal/domain"
	"pokefinder/internal/state"
)

// Record is the local storage form of a state. Unlike Flat it keeps the
// whole current search, so inactive filters keep their payload and mode
// across restarts.
type Record struct {
	Fields     []string               `json:"fields,omitempty"`
	Sort       []domain.SortField     `json:"sort,omitempty"`
	Filter     map[string]RecordValue `json:"filter,omitempty"`
	Languages  []string               `json:"lang,omitempty"`
	AutoSubmit *bool                  `json:"auto,omitempty"`
}

// RecordValue is one filter: its active flag and its encoded payload
type RecordValue struct {
	Active bool   `json:"active"`
	Value  string `json:"value"`
}

// ToRecord captures the current search, languages and auto-submit flag of s
func ToRecord(s state.State) Record {
	current := s.Search.Current
	auto := s.AutoSubmit
	rec := Record{
		Fields:     slices.Clone(current.Fields),
		Sort:       slices.Clone(current.Sort),
		Filter:     make(map[string]RecordValue, len(domain.FilterKeys)),
		Languages:  slices.Clone(s.Languages),
		AutoSubmit: &auto,
	}
	for _, key := range domain.FilterKeys {
		v := current.Filter.MustGet(key)
		encoded, _ := v.Encode()
		rec.Filter[string(key)] = RecordValue{Active: v.IsActive(), Value: encoded}
	}
	return rec
}

// FromRecord replaces the current search of template with the one in rec.
// Anything rec lacks or cannot be read (unknown columns, sort fields and
// languages, missing filters) comes from template's current search and
// languages. Pending, default and refresh counter are template's.
func FromRecord(template state.State, rec Record) state.State {
	next := template.Clone()
	base := template.Search.Current

	current := domain.Search{
		Sort:   knownSort(rec.Sort),
		Fields: knownFields(rec.Fields),
	}
	if len(current.Sort) == 0 {
		current.Sort = slices.Clone(base.Sort)
	}
	if len(current.Fields) == 0 {
		current.Fields = slices.Clone(base.Fields)
	}

	filter := base.Filter.Clone()
	for _, key := range domain.FilterKeys {
		rv, ok := rec.Filter[string(key)]
		if !ok {
			continue
		}
		v := domain.Decode(filter.MustGet(key), rv.Value).WithActive(rv.Active)
		filter, _ = filter.With(key, v)
	}
	current.Filter = filter
	next.Search.Current = current

	if langs := knownLanguages(rec.Languages); len(langs) > 0 {
		next.Languages = langs
	}
	if rec.AutoSubmit != nil {
		next.AutoSubmit = *rec.AutoSubmit
	}
	return next
}

func knownSort(sort []domain.SortField) []domain.SortField {
	var out []domain.SortField
	seen := map[string]bool{}
	for _, s := range sort {
		if !domain.KnownSortField(s.ID) || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

func knownFields(fields []string) []string {
	var out []string
	for _, id := range fields {
		if domain.KnownColumn(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func knownLanguages(langs []string) []string {
	var out []string
	for _, lang := range langs {
		if domain.KnownLanguage(lang) && !slices.Contains(out, lang) {
			out = append(out, lang)
		}
	}
	return out
}
