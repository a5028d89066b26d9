package persist

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"pokefinder/internal/codec"
)

// BadgerConfig configures a BadgerStorage
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     *zerolog.Logger
}

// BadgerStorage keeps the state blob in an embedded badger database
type BadgerStorage struct {
	db *badger.DB
}

// badgerLogger adapts zerolog to badger's Logger interface
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

// OpenBadger opens (creating if needed) a badger-backed port
func OpenBadger(cfg BadgerConfig) (*BadgerStorage, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger storage needs a path")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{log: cfg.Logger.With().Str("component", "badger").Logger()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &BadgerStorage{db: db}, nil
}

func (b *BadgerStorage) Load() (codec.Record, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return codec.Record{}, ErrNotFound
	}
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to read state: %w", err)
	}
	return unmarshalRecord(data)
}

func (b *BadgerStorage) Save(rec codec.Record) error {
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(stateKey), data)
	}); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (b *BadgerStorage) Clear() error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(stateKey))
	})
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

func (b *BadgerStorage) Close() error {
	return b.db.Close()
}
