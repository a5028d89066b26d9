package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFilterKey = errors.New("unknown filter key")
	ErrKindMismatch     = errors.New("value kind does not match filter key")
)

// FilterKey names one entry of a Filter. The set is closed.
type FilterKey string

const (
	FilterColor      FilterKey = "color"
	FilterGeneration FilterKey = "generation"
	FilterShape      FilterKey = "shape"
	FilterSpecies    FilterKey = "species"
	FilterType       FilterKey = "type"
	FilterWeight     FilterKey = "weight"
)

// FilterKeys lists every key in canonical order
var FilterKeys = []FilterKey{
	FilterColor,
	FilterGeneration,
	FilterShape,
	FilterSpecies,
	FilterType,
	FilterWeight,
}

// Kind returns the value kind a key always holds
func (k FilterKey) Kind() (Kind, bool) {
	switch k {
	case FilterColor, FilterGeneration, FilterShape:
		return KindString, true
	case FilterSpecies:
		return KindStringMatch, true
	case FilterType:
		return KindArrayMatch, true
	case FilterWeight:
		return KindNumberMatch, true
	}
	return "", false
}

// Label is the human name of the filter
func (k FilterKey) Label() string {
	switch k {
	case FilterColor:
		return "Colour"
	case FilterGeneration:
		return "Generation"
	case FilterShape:
		return "Shape"
	case FilterSpecies:
		return "Species Name"
	case FilterType:
		return "Type"
	case FilterWeight:
		return "Weight"
	}
	return string(k)
}

// ParseFilterKey returns the key named s
func ParseFilterKey(s string) (FilterKey, bool) {
	k := FilterKey(s)
	_, ok := k.Kind()
	return k, ok
}

// Filter maps every known filter key to its value
type Filter struct {
	Color      StringValue
	Generation StringValue
	Shape      StringValue
	Species    StringMatchValue
	Type       ArrayMatchValue
	Weight     NumberMatchValue
}

// Get returns the value stored under key
func (f Filter) Get(key FilterKey) (Value, error) {
	switch key {
	case FilterColor:
		return f.Color, nil
	case FilterGeneration:
		return f.Generation, nil
	case FilterShape:
		return f.Shape, nil
	case FilterSpecies:
		return f.Species, nil
	case FilterType:
		return f.Type, nil
	case FilterWeight:
		return f.Weight, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilterKey, key)
}

// MustGet is Get for keys taken from FilterKeys
func (f Filter) MustGet(key FilterKey) Value {
	v, err := f.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// With returns a copy of f with key set to v
func (f Filter) With(key FilterKey, v Value) (Filter, error) {
	next := f.Clone()
	var ok bool
	switch key {
	case FilterColor:
		next.Color, ok = v.(StringValue)
	case FilterGeneration:
		next.Generation, ok = v.(StringValue)
	case FilterShape:
		next.Shape, ok = v.(StringValue)
	case FilterSpecies:
		next.Species, ok = v.(StringMatchValue)
	case FilterType:
		var t ArrayMatchValue
		if t, ok = v.(ArrayMatchValue); ok {
			next.Type = NewArrayMatch(t.Active, t.Items, t.Mode)
		}
	case FilterWeight:
		next.Weight, ok = v.(NumberMatchValue)
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFilterKey, key)
	}
	if !ok {
		return f, fmt.Errorf("%w: %s cannot hold %T", ErrKindMismatch, key, v)
	}
	return next, nil
}

// Clone returns a deep copy
func (f Filter) Clone() Filter {
	f.Type.Items = append([]string(nil), f.Type.Items...)
	if len(f.Type.Items) == 0 {
		f.Type.Items = nil
	}
	return f
}

// ActiveKeys lists the keys whose value is active, in canonical order
func (f Filter) ActiveKeys() []FilterKey {
	var keys []FilterKey
	for _, key := range FilterKeys {
		if f.MustGet(key).IsActive() {
			keys = append(keys, key)
		}
	}
	return keys
}

func (f Filter) Equal(other Filter) bool {
	for _, key := range FilterKeys {
		if !f.MustGet(key).Equal(other.MustGet(key)) {
			return false
		}
	}
	return true
}
