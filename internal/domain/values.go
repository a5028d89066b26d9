package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant of the Value union a value is
type Kind string

const (
	KindString      Kind = "string"
	KindNumber      Kind = "number"
	KindArray       Kind = "array"
	KindStringMatch Kind = "string_match"
	KindNumberMatch Kind = "number_match"
	KindArrayMatch  Kind = "array_match"
)

const (
	modeSeparator = "~"
	listSeparator = "_"
)

// Value is a typed filter predicate. Every variant carries its own active
// flag, which alone decides whether the filter takes part in a query.
type Value interface {
	Kind() Kind
	IsActive() bool
	// WithActive returns a copy with the active flag replaced
	WithActive(active bool) Value
	// Encode returns the serialized payload; ok is false when the logical
	// value is empty
	Encode() (encoded string, ok bool)
	Equal(other Value) bool

	sealed()
}

// StringValue is an exact-match or presence filter
type StringValue struct {
	Active bool
	Value  *string
}

// NewString creates a StringValue; an empty string is stored as nil
func NewString(active bool, value string) StringValue {
	return StringValue{Active: active, Value: stringPtr(value)}
}

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) IsActive() bool { return v.Active }
func (v StringValue) sealed()        {}

func (v StringValue) WithActive(active bool) Value {
	v.Active = active
	return v
}

func (v StringValue) Encode() (string, bool) {
	if v.Value == nil {
		return "", false
	}
	return *v.Value, true
}

func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v.Active == o.Active && equalStringPtr(v.Value, o.Value)
}

// String returns the payload or "" when unset
func (v StringValue) String() string {
	if v.Value == nil {
		return ""
	}
	return *v.Value
}

// NumberValue holds a single optional number
type NumberValue struct {
	Active bool
	Value  *float64
}

// NewNumber creates a NumberValue
func NewNumber(active bool, value *float64) NumberValue {
	return NumberValue{Active: active, Value: cloneFloatPtr(value)}
}

func (v NumberValue) Kind() Kind     { return KindNumber }
func (v NumberValue) IsActive() bool { return v.Active }
func (v NumberValue) sealed()        {}

func (v NumberValue) WithActive(active bool) Value {
	v.Active = active
	return v
}

func (v NumberValue) Encode() (string, bool) {
	if v.Value == nil {
		return "", false
	}
	return formatNumber(*v.Value), true
}

func (v NumberValue) Equal(other Value) bool {
	o, ok := other.(NumberValue)
	return ok && v.Active == o.Active && equalFloatPtr(v.Value, o.Value)
}

// ArrayValue holds a list of tokens
type ArrayValue struct {
	Active bool
	Value  []string
}

// NewArray creates an ArrayValue; empty items are dropped
func NewArray(active bool, items []string) ArrayValue {
	return ArrayValue{Active: active, Value: normalizeItems(items)}
}

func (v ArrayValue) Kind() Kind     { return KindArray }
func (v ArrayValue) IsActive() bool { return v.Active }
func (v ArrayValue) sealed()        {}

func (v ArrayValue) WithActive(active bool) Value {
	v.Active = active
	v.Value = slices.Clone(v.Value)
	return v
}

func (v ArrayValue) Encode() (string, bool) {
	if len(v.Value) == 0 {
		return "", false
	}
	return EncodeList(v.Value), true
}

func (v ArrayValue) Equal(other Value) bool {
	o, ok := other.(ArrayValue)
	return ok && v.Active == o.Active && slices.Equal(v.Value, o.Value)
}

// StringMatchValue matches text using a StringMatchMode
type StringMatchValue struct {
	Active bool
	Text   *string
	Mode   StringMatchMode
}

// NewStringMatch creates a StringMatchValue; empty text is stored as nil
func NewStringMatch(active bool, text string, mode StringMatchMode) StringMatchValue {
	return StringMatchValue{Active: active, Text: stringPtr(text), Mode: mode}
}

func (v StringMatchValue) Kind() Kind     { return KindStringMatch }
func (v StringMatchValue) IsActive() bool { return v.Active }
func (v StringMatchValue) sealed()        {}

func (v StringMatchValue) WithActive(active bool) Value {
	v.Active = active
	return v
}

// Encode always produces a payload because the mode is meaningful on its own
func (v StringMatchValue) Encode() (string, bool) {
	text := ""
	if v.Text != nil {
		text = *v.Text
	}
	return string(v.Mode) + modeSeparator + text, true
}

func (v StringMatchValue) Equal(other Value) bool {
	o, ok := other.(StringMatchValue)
	return ok && v.Active == o.Active && v.Mode == o.Mode && equalStringPtr(v.Text, o.Text)
}

// TextString returns the text or "" when unset
func (v StringMatchValue) TextString() string {
	if v.Text == nil {
		return ""
	}
	return *v.Text
}

// NumberMatchValue compares a number using a NumberMatchMode
type NumberMatchValue struct {
	Active bool
	Number *float64
	Mode   NumberMatchMode
}

// NewNumberMatch creates a NumberMatchValue
func NewNumberMatch(active bool, number *float64, mode NumberMatchMode) NumberMatchValue {
	return NumberMatchValue{Active: active, Number: cloneFloatPtr(number), Mode: mode}
}

func (v NumberMatchValue) Kind() Kind     { return KindNumberMatch }
func (v NumberMatchValue) IsActive() bool { return v.Active }
func (v NumberMatchValue) sealed()        {}

func (v NumberMatchValue) WithActive(active bool) Value {
	v.Active = active
	return v
}

func (v NumberMatchValue) Encode() (string, bool) {
	number := ""
	if v.Number != nil {
		number = formatNumber(*v.Number)
	}
	return string(v.Mode) + modeSeparator + number, true
}

func (v NumberMatchValue) Equal(other Value) bool {
	o, ok := other.(NumberMatchValue)
	return ok && v.Active == o.Active && v.Mode == o.Mode && equalFloatPtr(v.Number, o.Number)
}

// ArrayMatchValue matches a set of tokens using an ArrayMatchMode
type ArrayMatchValue struct {
	Active bool
	Items  []string
	Mode   ArrayMatchMode
}

// NewArrayMatch creates an ArrayMatchValue; empty items are dropped
func NewArrayMatch(active bool, items []string, mode ArrayMatchMode) ArrayMatchValue {
	return ArrayMatchValue{Active: active, Items: normalizeItems(items), Mode: mode}
}

func (v ArrayMatchValue) Kind() Kind     { return KindArrayMatch }
func (v ArrayMatchValue) IsActive() bool { return v.Active }
func (v ArrayMatchValue) sealed()        {}

func (v ArrayMatchValue) WithActive(active bool) Value {
	v.Active = active
	v.Items = slices.Clone(v.Items)
	return v
}

func (v ArrayMatchValue) Encode() (string, bool) {
	return string(v.Mode) + modeSeparator + EncodeList(v.Items), true
}

func (v ArrayMatchValue) Equal(other Value) bool {
	o, ok := other.(ArrayMatchValue)
	return ok && v.Active == o.Active && v.Mode == o.Mode && slices.Equal(v.Items, o.Items)
}

// Decode parses raw into a value of the template's kind. The result keeps
// the template's active flag; the caller decides active-ness. Input that
// cannot be parsed yields the template's payload.
func Decode(template Value, raw string) Value {
	switch t := template.(type) {
	case StringValue:
		return StringValue{Active: t.Active, Value: stringPtr(raw)}

	case NumberValue:
		if raw == "" {
			return NumberValue{Active: t.Active}
		}
		n, ok := ParseNumber(raw)
		if !ok {
			return NewNumber(t.Active, t.Value)
		}
		return NumberValue{Active: t.Active, Value: &n}

	case ArrayValue:
		return ArrayValue{Active: t.Active, Value: DecodeList(raw)}

	case StringMatchValue:
		mode, payload, ok := splitMode(raw)
		if !ok || !StringMatchMode(mode).Valid() {
			return t
		}
		return StringMatchValue{Active: t.Active, Text: stringPtr(payload), Mode: StringMatchMode(mode)}

	case NumberMatchValue:
		mode, payload, ok := splitMode(raw)
		if !ok || !NumberMatchMode(mode).Valid() {
			return NewNumberMatch(t.Active, t.Number, t.Mode)
		}
		if payload == "" {
			return NumberMatchValue{Active: t.Active, Mode: NumberMatchMode(mode)}
		}
		n, ok := ParseNumber(payload)
		if !ok {
			return NewNumberMatch(t.Active, t.Number, t.Mode)
		}
		return NumberMatchValue{Active: t.Active, Number: &n, Mode: NumberMatchMode(mode)}

	case ArrayMatchValue:
		mode, payload, ok := splitMode(raw)
		if !ok || !ArrayMatchMode(mode).Valid() {
			return t.WithActive(t.Active)
		}
		return ArrayMatchValue{Active: t.Active, Items: DecodeList(payload), Mode: ArrayMatchMode(mode)}
	}
	return template
}

// ValidListToken reports whether token can be stored in a list without
// splitting into several items
func ValidListToken(token string) bool {
	return token != "" && !strings.Contains(token, listSeparator)
}

// EncodeList joins tokens with the list separator
func EncodeList(items []string) string {
	return strings.Join(items, listSeparator)
}

// DecodeList splits an encoded list, dropping empty tokens
func DecodeList(raw string) []string {
	if raw == "" {
		return nil
	}
	return normalizeItems(strings.Split(raw, listSeparator))
}

func splitMode(raw string) (mode, payload string, ok bool) {
	return strings.Cut(raw, modeSeparator)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ParseNumber reads a finite decimal number; NaN and infinities are refused
func ParseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func normalizeItems(items []string) []string {
	var out []string
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FloatPtr is a convenience for building number values
func FloatPtr(n float64) *float64 {
	return &n
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
