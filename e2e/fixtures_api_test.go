//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeAPI is a stand-in for the Pokémon GraphQL endpoint. Results depend on
// the colour filter so tests can tell which search was run.
type FakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []APIRequest
}

// APIRequest is one request received by the fake
type APIRequest struct {
	Operation string
	Variables map[string]any
}

func node(idName, name, color string, weight float64) string {
	return fmt.Sprintf(`{"node":{"idName":%q,"isDefault":true,"weight":%g,"height":50,"order":1,
		"types":[{"order":1,"type":{"idName":"poison","names":[{"text":"Poison"}]}}],
		"species":{"idName":%q,"names":[{"text":%q}],
			"color":{"idName":%q,"names":[]},"shape":{"idName":"blob","names":[]},
			"generation":{"idName":"generation-i","names":[]}},
		"sprites":{"frontDefault":null,"frontShiny":null,"backDefault":null,"backShiny":null}}}`,
		idName, weight, idName, name, color)
}

const optionsResponse = `{"data":{
	"types":{"edges":[{"node":{"idName":"poison","names":[{"text":"Poison"}]}}]},
	"colors":[{"idName":"purple","names":[{"text":"Purple"}]},{"idName":"yellow","names":[{"text":"Yellow"}]}],
	"shapes":[{"idName":"blob","names":[{"text":"Blob"}]}],
	"generations":{"edges":[{"node":{"idName":"generation-i","names":[{"text":"Generation I"}]}}]}
}}`

// NewFakeAPI starts a fake endpoint that is stopped when the test ends
func NewFakeAPI(t *testing.T) *FakeAPI {
	f := &FakeAPI{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

// URL is the endpoint to pass to the app
func (f *FakeAPI) URL() string {
	return f.srv.URL
}

// Searches returns the variables of every search received so far
func (f *FakeAPI) Searches() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, r := range f.requests {
		if r.Operation == "Pokemons" {
			out = append(out, r.Variables)
		}
	}
	return out
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, APIRequest{Operation: body.OperationName, Variables: body.Variables})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch body.OperationName {
	case "Pokemons":
		rows := []string{node("grimer", "Grimer", "purple", 30)}
		if body.Variables["color"] == nil {
			rows = append(rows, node("pikachu", "Pikachu", "yellow", 6))
		}
		fmt.Fprintf(w, `{"data":{"pokemons":{"edges":[%s]}}}`, strings.Join(rows, ","))
	case "FilterOptions":
		fmt.Fprint(w, optionsResponse)
	case "SpeciesNames":
		fmt.Fprint(w, `{"data":{"pokemonSpeciess":{"edges":[{"node":{"names":[{"text":"Grimer"}]}}]}}}`)
	default:
		http.Error(w, "unknown operation", http.StatusBadRequest)
	}
}
