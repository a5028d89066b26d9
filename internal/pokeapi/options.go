package pokeapi

import (
	"strings"

	"pokefinder/internal/domain"
)

// Option is one selectable filter value
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Options lists the values the select-style filters accept
type Options struct {
	Types       []Option
	Colors      []Option
	Shapes      []Option
	Generations []Option
}

// For returns the options of a filter key; nil for free-form keys
func (o *Options) For(key domain.FilterKey) []Option {
	if o == nil {
		return nil
	}
	switch key {
	case domain.FilterType:
		return o.Types
	case domain.FilterColor:
		return o.Colors
	case domain.FilterShape:
		return o.Shapes
	case domain.FilterGeneration:
		return o.Generations
	}
	return nil
}

// Label returns the label of id under key, or id when unknown
func (o *Options) Label(key domain.FilterKey, id string) string {
	for _, opt := range o.For(key) {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id
}

// Resolve maps typed text to an option id, matching ids and labels
// case-insensitively
func (o *Options) Resolve(key domain.FilterKey, text string) (string, bool) {
	text = strings.TrimSpace(text)
	for _, opt := range o.For(key) {
		if strings.EqualFold(opt.ID, text) || strings.EqualFold(opt.Label, text) {
			return opt.ID, true
		}
	}
	return "", false
}

type namedEdges struct {
	Edges []struct {
		Node Named `json:"node"`
	} `json:"edges"`
}

func (e namedEdges) options() []Option {
	out := make([]Option, 0, len(e.Edges))
	for _, edge := range e.Edges {
		out = append(out, Option{ID: edge.Node.IDName, Label: edge.Node.Label()})
	}
	return out
}

func namedOptions(items []Named) []Option {
	out := make([]Option, 0, len(items))
	for _, n := range items {
		out = append(out, Option{ID: n.IDName, Label: n.Label()})
	}
	return out
}

type optionsData struct {
	Types       namedEdges `json:"types"`
	Colors      []Named    `json:"colors"`
	Shapes      []Named    `json:"shapes"`
	Generations namedEdges `json:"generations"`
}

func (d optionsData) options() *Options {
	return &Options{
		Types:       d.Types.options(),
		Colors:      namedOptions(d.Colors),
		Shapes:      namedOptions(d.Shapes),
		Generations: d.Generations.options(),
	}
}

type speciesNamesData struct {
	Species struct {
		Edges []struct {
			Node struct {
				Names []Name `json:"names"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"pokemonSpeciess"`
}

func (d speciesNamesData) names() []string {
	var out []string
	for _, e := range d.Species.Edges {
		if len(e.Node.Names) > 0 && e.Node.Names[0].Text != "" {
			out = append(out, strings.ToLower(e.Node.Names[0].Text))
		}
	}
	return out
}
