package pokeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pokefinder/internal/domain"
)

// Policy decides whether a cached response may answer a query
type Policy int

const (
	// CacheFirst answers from the cache when it can
	CacheFirst Policy = iota
	// NetworkOnly always asks the server and refreshes the cache
	NetworkOnly
)

func (p Policy) String() string {
	if p == NetworkOnly {
		return "network-only"
	}
	return "cache-first"
}

// Config configures a Client
type Config struct {
	Endpoint          string
	Timeout           time.Duration
	RequestsPerSecond float64
	// CacheSize is the number of responses kept; zero disables the cache
	CacheSize  int
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client runs queries against the GraphQL endpoint
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	cache    *lru.Cache[string, json.RawMessage]
	log      zerolog.Logger
}

type graphqlRequest struct {
	Query         string    `json:"query"`
	Variables     Variables `json:"variables,omitempty"`
	OperationName string    `json:"operationName,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is one entry of a response's errors array
type GraphQLError struct {
	Message   string                 `json:"message"`
	Locations []GraphQLErrorLocation `json:"locations,omitempty"`
	Path      []interface{}          `json:"path,omitempty"`
}

type GraphQLErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// QueryError is returned when the server answers with GraphQL errors
type QueryError struct {
	Errors []GraphQLError
}

func (e *QueryError) Error() string {
	var sb strings.Builder
	sb.WriteString("GraphQL errors:")
	for i, ge := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s", i+1, ge.Message))
		if len(ge.Locations) > 0 {
			loc := ge.Locations[0]
			sb.WriteString(fmt.Sprintf(" (line %d, column %d)", loc.Line, loc.Column))
		}
		if len(ge.Path) > 0 {
			parts := make([]string, len(ge.Path))
			for j, p := range ge.Path {
				parts[j] = fmt.Sprintf("%v", p)
			}
			sb.WriteString(" at path: " + strings.Join(parts, "."))
		}
		sb.WriteString(";")
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// StatusError is returned for non-2xx HTTP responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// New creates a client. The built-in query documents are validated here so
// that a broken document fails at startup.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if err := ValidateDocuments(); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: cfg.Endpoint,
		http:     cfg.HTTPClient,
		log:      cfg.Logger.With().Str("component", "pokeapi").Logger(),
	}
	if c.http == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, json.RawMessage](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create response cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Search runs PokemonQuery with vars
func (c *Client) Search(ctx context.Context, vars Variables, policy Policy) (*Result, error) {
	var data pokemonsData
	if err := c.do(ctx, "Pokemons", PokemonQuery, vars, policy, &data); err != nil {
		return nil, err
	}
	return data.result(), nil
}

// Options fetches the filter choices localised to lang
func (c *Client) Options(ctx context.Context, lang string) (*Options, error) {
	var data optionsData
	if err := c.do(ctx, "FilterOptions", OptionsQuery, Variables{"lang": lang}, CacheFirst, &data); err != nil {
		return nil, err
	}
	return data.options(), nil
}

// SpeciesNames suggests up to ten lower-cased species names matching text
func (c *Client) SpeciesNames(ctx context.Context, text string, mode domain.StringMatchMode, lang string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	vars := Variables{
		"lang":       lang,
		"textFilter": map[string]any{mode.APIKey(): text, "lang": lang},
	}
	var data speciesNamesData
	if err := c.do(ctx, "SpeciesNames", SpeciesNamesQuery, vars, CacheFirst, &data); err != nil {
		return nil, err
	}
	return data.names(), nil
}

func (c *Client) do(ctx context.Context, operation, query string, vars Variables, policy Policy, out any) error {
	reqBody := graphqlRequest{
		Query:         query,
		Variables:     vars,
		OperationName: operation,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	key := cacheKey(operation, vars)

	if policy == CacheFirst && c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			c.log.Debug().Str("operation", operation).Msg("cache hit")
			return decodeData(data, out)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	data, err := c.post(ctx, payload)
	if err != nil {
		c.log.Warn().Err(err).Str("operation", operation).Str("policy", policy.String()).Msg("query failed")
		return err
	}
	c.log.Debug().
		Str("operation", operation).
		Str("policy", policy.String()).
		Dur("elapsed", time.Since(start)).
		Msg("query completed")

	if c.cache != nil {
		c.cache.Add(key, data)
	}
	return decodeData(data, out)
}

func (c *Client) post(ctx context.Context, payload []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var gr graphqlResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(gr.Errors) > 0 {
		return nil, &QueryError{Errors: gr.Errors}
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return nil, errors.New("response carries no data")
	}
	return gr.Data, nil
}

func decodeData(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// cacheKey identifies a query by operation and variables. encoding/json
// writes map keys sorted, so equal variables give equal keys.
func cacheKey(operation string, vars Variables) string {
	b, err := json.Marshal(vars)
	if err != nil {
		return operation
	}
	return operation + ":" + string(b)
}
