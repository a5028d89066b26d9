package domain

import "slices"

// SortField orders results by one field. Each field keeps its own direction.
type SortField struct {
	ID      string `json:"id"`
	Reverse bool   `json:"reverse"`
}

// UniformDirection gives every field the direction of the first one, for
// backends that cannot sort fields in different directions
func UniformDirection(sort []SortField) []SortField {
	if len(sort) == 0 {
		return nil
	}
	out := make([]SortField, len(sort))
	for i, s := range sort {
		out[i] = SortField{ID: s.ID, Reverse: sort[0].Reverse}
	}
	return out
}

// Search is one complete configuration of what to display and how to
// filter and sort it
type Search struct {
	Fields []string
	Sort   []SortField
	Filter Filter
}

// Clone returns a deep copy
func (s Search) Clone() Search {
	return Search{
		Fields: slices.Clone(s.Fields),
		Sort:   slices.Clone(s.Sort),
		Filter: s.Filter.Clone(),
	}
}

func (s Search) WithFields(fields []string) Search {
	next := s.Clone()
	next.Fields = slices.Clone(fields)
	return next
}

func (s Search) WithSort(sort []SortField) Search {
	next := s.Clone()
	next.Sort = slices.Clone(sort)
	return next
}

func (s Search) WithFilter(filter Filter) Search {
	next := s.Clone()
	next.Filter = filter.Clone()
	return next
}

func (s Search) Equal(other Search) bool {
	return slices.Equal(s.Fields, other.Fields) &&
		slices.Equal(s.Sort, other.Sort) &&
		s.Filter.Equal(other.Filter)
}

// Column is a displayable result column
type Column struct {
	ID     string
	Header string
}

// Columns is every column the results table can show
var Columns = []Column{
	{ID: "veekun", Header: "Link"},
	{ID: "index", Header: "#"},
	{ID: "order", Header: "Order"},
	{ID: "image-fd", Header: "Image (Front Default)"},
	{ID: "image-bd", Header: "Image (Back Default)"},
	{ID: "idName", Header: "ID"},
	{ID: "height", Header: "Height"},
	{ID: "weight", Header: "Weight"},
	{ID: "color", Header: "Colour"},
	{ID: "species", Header: "Species"},
	{ID: "type", Header: "Type"},
	{ID: "is-default", Header: "Is Default"},
	{ID: "shape", Header: "Shape"},
	{ID: "generation", Header: "Generation"},
}

// SortOptions is every field the API can order by
var SortOptions = []Column{
	{ID: "order", Header: "Order"},
	{ID: "height", Header: "Height"},
	{ID: "isDefault", Header: "Is Default"},
	{ID: "weight", Header: "Weight"},
}

// Language is a selectable result language
type Language struct {
	ID    string
	Label string
}

// Languages offered in the language picker
var Languages = []Language{
	{ID: "cz", Label: "CZ"},
	{ID: "de", Label: "DE"},
	{ID: "en", Label: "EN"},
	{ID: "es", Label: "ES"},
	{ID: "fr", Label: "FR"},
	{ID: "it", Label: "IT"},
	{ID: "ja-Hrkt", Label: "JP"},
	{ID: "ko", Label: "KR"},
}

// FallbackLanguage is appended after any other primary language
const FallbackLanguage = "en"

func KnownColumn(id string) bool {
	return findColumn(Columns, id)
}

func KnownSortField(id string) bool {
	return findColumn(SortOptions, id)
}

func KnownLanguage(id string) bool {
	for _, l := range Languages {
		if l.ID == id {
			return true
		}
	}
	return false
}

// ColumnHeader returns the header for id, or id itself when unknown
func ColumnHeader(id string) string {
	for _, c := range Columns {
		if c.ID == id {
			return c.Header
		}
	}
	return id
}

// LanguagePreference builds the preference list for a primary language
func LanguagePreference(primary string) []string {
	if primary == "" || primary == FallbackLanguage {
		return []string{FallbackLanguage}
	}
	return []string{primary, FallbackLanguage}
}

func findColumn(columns []Column, id string) bool {
	for _, c := range columns {
		if c.ID == id {
			return true
		}
	}
	return false
}
