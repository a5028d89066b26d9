package pokeapi

import (
	"slices"
	"strconv"
	"strings"

	"pokefinder/internal/domain"
)

// VeekunBaseURL is where the link column points
const VeekunBaseURL = "https://veekun.com/dex/pokemon/"

// Name is one localised name
type Name struct {
	Text string `json:"text"`
}

// Named is any API entity with an id and localised names
type Named struct {
	IDName string `json:"idName"`
	Names  []Name `json:"names"`
}

// Label is the first localised name, or the id when there is none
func (n Named) Label() string {
	if len(n.Names) > 0 && n.Names[0].Text != "" {
		return n.Names[0].Text
	}
	return n.IDName
}

type PokemonType struct {
	Order int   `json:"order"`
	Type  Named `json:"type"`
}

type Species struct {
	Named
	Color      Named `json:"color"`
	Shape      Named `json:"shape"`
	Generation Named `json:"generation"`
}

type Sprites struct {
	FrontDefault *string `json:"frontDefault"`
	FrontShiny   *string `json:"frontShiny"`
	BackDefault  *string `json:"backDefault"`
	BackShiny    *string `json:"backShiny"`
}

// Pokemon is one result row
type Pokemon struct {
	IDName    string        `json:"idName"`
	IsDefault bool          `json:"isDefault"`
	Weight    float64       `json:"weight"`
	Height    float64       `json:"height"`
	Order     int           `json:"order"`
	Types     []PokemonType `json:"types"`
	Species   Species       `json:"species"`
	Sprites   Sprites       `json:"sprites"`
}

// TypeLabels returns the type names in slot order
func (p Pokemon) TypeLabels() []string {
	types := slices.Clone(p.Types)
	slices.SortStableFunc(types, func(a, b PokemonType) int { return a.Order - b.Order })
	labels := make([]string, 0, len(types))
	for _, t := range types {
		labels = append(labels, t.Type.Label())
	}
	return labels
}

// Result is the outcome of a search
type Result struct {
	Rows []Pokemon
}

type pokemonsData struct {
	Pokemons struct {
		Edges []struct {
			Node Pokemon `json:"node"`
		} `json:"edges"`
	} `json:"pokemons"`
}

func (d pokemonsData) result() *Result {
	r := &Result{Rows: make([]Pokemon, 0, len(d.Pokemons.Edges))}
	for _, e := range d.Pokemons.Edges {
		r.Rows = append(r.Rows, e.Node)
	}
	return r
}

// Cell renders the text of column id for row p. index is the 1-based
// position of the row in the result.
func Cell(id string, p Pokemon, index int) string {
	switch id {
	case "veekun":
		return VeekunBaseURL + p.IDName
	case "index":
		return strconv.Itoa(index)
	case "order":
		return strconv.Itoa(p.Order)
	case "image-fd":
		return deref(p.Sprites.FrontDefault)
	case "image-bd":
		return deref(p.Sprites.BackDefault)
	case "idName":
		return p.IDName
	case "height":
		return formatNumber(p.Height) + " cm"
	case "weight":
		return formatNumber(p.Weight) + " kg"
	case "color":
		return p.Species.Color.Label()
	case "species":
		return p.Species.Label()
	case "type":
		return strings.Join(p.TypeLabels(), ", ")
	case "is-default":
		if p.IsDefault {
			return "Yes"
		}
		return "No"
	case "shape":
		return p.Species.Shape.Label()
	case "generation":
		return p.Species.Generation.Label()
	}
	return ""
}

// Headers returns the column headers for fields
func Headers(fields []string) []string {
	out := make([]string, len(fields))
	for i, id := range fields {
		out[i] = domain.ColumnHeader(id)
	}
	return out
}

// Table renders every row of r for fields
func (r *Result) Table(fields []string) [][]string {
	rows := make([][]string, 0, len(r.Rows))
	for i, p := range r.Rows {
		row := make([]string, len(fields))
		for j, id := range fields {
			row[j] = Cell(id, p, i+1)
		}
		rows = append(rows, row)
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
