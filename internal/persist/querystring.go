package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pokefinder/internal/codec"
)

// QueryString is the shareable form of the state, standing in for a page
// URL's query string. It lives in memory and can mirror every write to a
// file so that the last link survives a restart.
type QueryString struct {
	mu         sync.RWMutex
	raw        string
	mirrorPath string
}

// NewQueryString creates a port holding raw, which may be a bare query
// string or a full link
func NewQueryString(raw string) *QueryString {
	return &QueryString{raw: normalizeQuery(raw)}
}

// WithMirror makes every Save also write the query string to path
func (q *QueryString) WithMirror(path string) *QueryString {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mirrorPath = path
	return q
}

// Load returns the parsed query string. An empty query string is not an
// error; it simply carries no keys.
func (q *QueryString) Load() (codec.Flat, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return codec.Parse(q.raw), nil
}

// Save replaces the query string
func (q *QueryString) Save(flat codec.Flat) error {
	raw := codec.Encode(flat)

	q.mu.Lock()
	q.raw = raw
	mirror := q.mirrorPath
	q.mu.Unlock()

	if mirror == "" {
		return nil
	}
	return writeFileAtomic(mirror, []byte(raw+"\n"))
}

// String returns the raw query string without a leading '?'
func (q *QueryString) String() string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.raw
}

// Link joins base and the query string into a shareable link
func (q *QueryString) Link(base string) string {
	raw := q.String()
	if raw == "" {
		return base
	}
	base = strings.TrimRight(base, "?&")
	if strings.Contains(base, "?") {
		return base + "&" + raw
	}
	return base + "?" + raw
}

func normalizeQuery(raw string) string {
	return codec.Encode(codec.Parse(raw))
}

// writeFileAtomic replaces path with data via a temporary file in the same
// directory
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
