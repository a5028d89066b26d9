// Package persist provides the places a state can be kept between runs:
// the shareable query string and local storage backends.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"pokefinder/internal/codec"
)

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("no saved state")

// Port loads and saves a flattened state. It is the shareable form, so it
// only carries what a link carries.
type Port interface {
	Load() (codec.Flat, error)
	Save(codec.Flat) error
}

// Storage loads and saves the full record of the last-used search
type Storage interface {
	Load() (codec.Record, error)
	Save(codec.Record) error
}

// Clearer is implemented by ports whose saved state can be erased
type Clearer interface {
	Clear() error
}

// Closer is implemented by ports holding an open resource
type Closer interface {
	Close() error
}

// Nop is a storage that never has anything saved and discards writes
type Nop struct{}

func (Nop) Load() (codec.Record, error) { return codec.Record{}, ErrNotFound }
func (Nop) Save(codec.Record) error     { return nil }
func (Nop) Clear() error                { return nil }

// Storage drivers
const (
	DriverFile   = "file"
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// stateKey is the key the record is stored under in key-value backends
const stateKey = "state"

func marshalRecord(rec codec.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return data, nil
}

func unmarshalRecord(data []byte) (codec.Record, error) {
	var rec codec.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return codec.Record{}, fmt.Errorf("failed to parse saved state: %w", err)
	}
	return rec, nil
}
