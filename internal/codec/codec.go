// Package codec converts application state to and from the flat string
// record used by the query string and the Record kept in local storage.
package codec

import (
	"maps"
	"net/url"
	"slices"
	"strings"

	"pokefinder/internal/domain"
	"pokefinder/internal/state"
)

// Record keys
const (
	KeySort   = "sort"
	KeyFields = "fields"
	KeyLang   = "lang"
)

const reversePrefix = "-"

// Flat is the serialized form of a state: a string-keyed string record
type Flat map[string]string

// Clone returns a copy of f
func (f Flat) Clone() Flat {
	if f == nil {
		return Flat{}
	}
	return maps.Clone(f)
}

// Flatten serializes the current search and the languages of s. Inactive
// filters are omitted; an active filter with an empty value is written as
// the empty string.
func Flatten(s state.State) Flat {
	current := s.Search.Current
	flat := Flat{
		KeySort:   encodeSort(current.Sort),
		KeyFields: domain.EncodeList(current.Fields),
		KeyLang:   domain.EncodeList(s.Languages),
	}
	for _, key := range domain.FilterKeys {
		v := current.Filter.MustGet(key)
		if !v.IsActive() {
			continue
		}
		encoded, _ := v.Encode()
		flat[string(key)] = encoded
	}
	return flat
}

// Unflatten rebuilds a state from flat, taking everything flat does not
// carry from template's current search and languages. Sort, fields and
// languages fall back to the template's when missing or unusable. A filter
// present in flat is decoded against the template's value and made active;
// an absent filter keeps the template's value but is inactive.
func Unflatten(template state.State, flat Flat) state.State {
	next := template.Clone()
	base := template.Search.Current

	current := domain.Search{
		Sort:   decodeSort(flat[KeySort]),
		Fields: decodeFields(flat[KeyFields]),
	}
	if len(current.Sort) == 0 {
		current.Sort = slices.Clone(base.Sort)
	}
	if len(current.Fields) == 0 {
		current.Fields = slices.Clone(base.Fields)
	}

	filter := base.Filter.Clone()
	for _, key := range domain.FilterKeys {
		tv := filter.MustGet(key)
		var v domain.Value
		if raw, ok := flat[string(key)]; ok {
			v = domain.Decode(tv, raw).WithActive(true)
		} else {
			v = tv.WithActive(false)
		}
		// Decode always returns the template's kind
		filter, _ = filter.With(key, v)
	}
	current.Filter = filter
	next.Search.Current = current

	if langs := decodeLanguages(flat[KeyLang]); len(langs) > 0 {
		next.Languages = langs
	}
	return next
}

// Encode renders flat as a URL query string with sorted keys
func Encode(flat Flat) string {
	values := url.Values{}
	for k, v := range flat {
		values.Set(k, v)
	}
	return values.Encode()
}

// Parse reads a query string, with or without a leading '?' or a full URL
// in front of it. Malformed input yields an empty record.
func Parse(raw string) Flat {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Flat{}
	}
	flat := Flat{}
	for k, v := range values {
		if k == "" || len(v) == 0 {
			continue
		}
		flat[k] = v[0]
	}
	return flat
}

func encodeSort(sort []domain.SortField) string {
	tokens := make([]string, 0, len(sort))
	for _, s := range sort {
		if s.Reverse {
			tokens = append(tokens, reversePrefix+s.ID)
		} else {
			tokens = append(tokens, s.ID)
		}
	}
	return domain.EncodeList(tokens)
}

func decodeSort(raw string) []domain.SortField {
	var sort []domain.SortField
	for _, token := range domain.DecodeList(raw) {
		id, reverse := strings.CutPrefix(token, reversePrefix)
		sort = append(sort, domain.SortField{ID: id, Reverse: reverse})
	}
	return knownSort(sort)
}

func decodeFields(raw string) []string {
	return knownFields(domain.DecodeList(raw))
}

func decodeLanguages(raw string) []string {
	return knownLanguages(domain.DecodeList(raw))
}
