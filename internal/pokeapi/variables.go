package pokeapi

import (
	"slices"

	"pokefinder/internal/domain"
)

// Variables are the values sent alongside a query
type Variables map[string]any

// VariableOptions tunes how a search is turned into variables
type VariableOptions struct {
	PageSize int
	// UniformSortDirection applies the primary sort field's direction to
	// every field
	UniformSortDirection bool
}

// DefaultPageSize is how many rows are requested when no size is set
const DefaultPageSize = 1000

// SortOrder is one entry of the orderBy variable
type SortOrder struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// BuildVariables turns a search into PokemonQuery variables. Inactive
// filters, and active ones with nothing to match, are sent as null.
func BuildVariables(search domain.Search, languages []string, opts VariableOptions) Variables {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if len(languages) == 0 {
		languages = []string{domain.FallbackLanguage}
	}

	sort := search.Sort
	if opts.UniformSortDirection {
		sort = domain.UniformDirection(sort)
	}
	orderBy := make([]SortOrder, 0, len(sort))
	for _, s := range sort {
		order := "ASC"
		if s.Reverse {
			order = "DESC"
		}
		orderBy = append(orderBy, SortOrder{Field: s.ID, Order: order})
	}

	vars := Variables{
		"lang":     slices.Clone(languages),
		"quantity": opts.PageSize,
		"orderBy":  orderBy,
	}

	f := search.Filter
	vars[string(domain.FilterColor)] = resolveID(f.Color)
	vars[string(domain.FilterShape)] = resolveID(f.Shape)
	vars[string(domain.FilterGeneration)] = resolveID(f.Generation)
	vars[string(domain.FilterType)] = resolveTypes(f.Type)
	vars[string(domain.FilterWeight)] = resolveWeight(f.Weight)
	vars[string(domain.FilterSpecies)] = resolveSpecies(f.Species, languages[0])
	return vars
}

func resolveID(v domain.StringValue) any {
	if !v.Active || v.Value == nil {
		return nil
	}
	return *v.Value
}

func resolveTypes(v domain.ArrayMatchValue) any {
	if !v.Active || len(v.Items) == 0 {
		return nil
	}
	return map[string]any{v.Mode.APIKey(): slices.Clone(v.Items)}
}

func resolveWeight(v domain.NumberMatchValue) any {
	if !v.Active || v.Number == nil {
		return nil
	}
	return map[string]any{v.Mode.APIKey(): *v.Number}
}

func resolveSpecies(v domain.StringMatchValue, lang string) any {
	if !v.Active || v.Text == nil {
		return nil
	}
	return map[string]any{v.Mode.APIKey(): *v.Text, "lang": lang}
}
