// Package pokeapi talks to the Pokémon GraphQL API: it holds the query
// documents, turns a search into query variables, runs the queries and
// decodes the results.
package pokeapi

import (
	"fmt"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// PokemonQuery fetches the rows of the results table
const PokemonQuery = `query Pokemons(
	$lang: [String]
	$quantity: Int
	$orderBy: [PokemonSort]
	$type: ListFilter
	$color: ID
	$shape: ID
	$generation: ID
	$species: TextFilter
	$weight: IntFilter
) {
	pokemons(
		first: $quantity
		where: {
			types: $type
			species: {
				color__idName: [$color]
				shape__idName: [$shape]
				generation__idName: [$generation]
				name: $species
			}
			weight: $weight
		}
		orderBy: $orderBy
	) {
		edges {
			node {
				idName
				isDefault
				weight
				height
				order
				types {
					order
					type {
						idName
						names(lang: $lang) { text }
					}
				}
				species {
					idName
					names(lang: $lang) { text }
					color {
						idName
						names(lang: $lang) { text }
					}
					shape {
						idName
						names(lang: $lang) { text }
					}
					generation {
						idName
						names(lang: $lang) { text }
					}
				}
				sprites {
					frontDefault
					frontShiny
					backDefault
					backShiny
				}
			}
		}
	}
}`

// OptionsQuery fetches the choices offered for the select-style filters
const OptionsQuery = `query FilterOptions($lang: String) {
	types(first: 100) {
		edges {
			node {
				idName
				names(lang: [$lang]) { text }
			}
		}
	}
	colors: pokemonColors {
		idName
		names(lang: [$lang]) { text }
	}
	shapes: pokemonShapes {
		idName
		names(lang: [$lang]) { text }
	}
	generations(first: 100) {
		edges {
			node {
				idName
				names(lang: [$lang]) { text }
			}
		}
	}
}`

// SpeciesNamesQuery suggests species names while one is being typed
const SpeciesNamesQuery = `query SpeciesNames($lang: String, $textFilter: TextFilter!) {
	pokemonSpeciess(first: 10, where: {name: $textFilter}) {
		edges {
			node {
				names(lang: [$lang]) { text }
			}
		}
	}
}`

// Document is a parsed query with the names of the variables it declares
type Document struct {
	Name      string
	Source    string
	Variables []string
}

// ParseDocument parses source and collects its operation name and
// declared variables
func ParseDocument(source string) (*Document, error) {
	doc, err := parser.Parse(parser.ParseParams{Source: source})
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	var op *ast.OperationDefinition
	for _, def := range doc.Definitions {
		if o, ok := def.(*ast.OperationDefinition); ok {
			if op != nil {
				return nil, fmt.Errorf("query declares more than one operation")
			}
			op = o
		}
	}
	if op == nil {
		return nil, fmt.Errorf("query declares no operation")
	}

	d := &Document{Source: source}
	if op.Name != nil {
		d.Name = op.Name.Value
	}
	for _, v := range op.VariableDefinitions {
		d.Variables = append(d.Variables, v.Variable.Name.Value)
	}
	return d, nil
}

// ValidateDocuments parses every built-in query
func ValidateDocuments() error {
	for _, source := range []string{PokemonQuery, OptionsQuery, SpeciesNamesQuery} {
		if _, err := ParseDocument(source); err != nil {
			return err
		}
	}
	return nil
}
