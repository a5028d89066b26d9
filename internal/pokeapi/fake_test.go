package pokeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

const pokemonsResponse = `{"data":{"pokemons":{"edges":[
	{"node":{"idName":"gloom","isDefault":true,"weight":8.6,"height":80,"order":60,
		"types":[{"order":2,"type":{"idName":"poison","names":[{"text":"Poison"}]}},
		         {"order":1,"type":{"idName":"grass","names":[]}}],
		"species":{"idName":"gloom","names":[{"text":"Gloom"}],
			"color":{"idName":"blue","names":[{"text":"Blue"}]},
			"shape":{"idName":"humanoid","names":[]},
			"generation":{"idName":"generation-i","names":[{"text":"Generation I"}]}},
		"sprites":{"frontDefault":"https://img.test/44.png","frontShiny":null,"backDefault":null,"backShiny":null}}},
	{"node":{"idName":"grimer","isDefault":false,"weight":30,"height":90,"order":120,
		"types":[{"order":1,"type":{"idName":"poison","names":[{"text":"Poison"}]}}],
		"species":{"idName":"grimer","names":[],
			"color":{"idName":"purple","names":[{"text":"Purple"}]},
			"shape":{"idName":"arms","names":[{"text":"Arms"}]},
			"generation":{"idName":"generation-i","names":[]}},
		"sprites":{"frontDefault":null,"frontShiny":null,"backDefault":"https://img.test/b88.png","backShiny":null}}}
]}}}`

const optionsResponse = `{"data":{
	"types":{"edges":[{"node":{"idName":"poison","names":[{"text":"Poison"}]}},{"node":{"idName":"fire","names":[]}}]},
	"colors":[{"idName":"purple","names":[{"text":"Purple"}]}],
	"shapes":[{"idName":"arms","names":[{"text":"Arms"}]}],
	"generations":{"edges":[{"node":{"idName":"generation-i","names":[{"text":"Generation I"}]}}]}
}}`

const speciesResponse = `{"data":{"pokemonSpeciess":{"edges":[
	{"node":{"names":[{"text":"Charmander"}]}},
	{"node":{"names":[{"text":"Charmeleon"}]}}
]}}}`

// fakeAPI is a stand-in GraphQL endpoint. It parses every incoming document
// and answers by operation name.
type fakeAPI struct {
	t *testing.T

	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]string
	status    int
}

type recordedRequest struct {
	Operation string
	Variables map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{
		t: t,
		responses: map[string]string{
			"pokemons":        pokemonsResponse,
			"types":           optionsResponse,
			"pokemonSpeciess": speciesResponse,
		},
		status: http.StatusOK,
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"Syntax Error"}]}`))
		return
	}
	op := doc.Definitions[0].(*ast.OperationDefinition)
	root := op.SelectionSet.Selections[0].(*ast.Field).Name.Value

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Operation: op.Name.Value, Variables: req.Variables})
	status := f.status
	body := f.responses[root]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) setResponse(root, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[root] = body
}

func (f *fakeAPI) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}
