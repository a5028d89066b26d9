package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"pokefinder/internal/codec"
)

const (
	sqliteSchema = "CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)"
	sqliteGet    = "SELECT value FROM kv WHERE key = ?1"
	sqliteSet    = "INSERT INTO kv(key,value) VALUES(?1,?2) ON CONFLICT(key) DO UPDATE SET value=excluded.value"
	sqliteDelete = "DELETE FROM kv WHERE key = ?1"
)

// SQLiteStorage keeps the state blob in a single-table sqlite database
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path. The special
// path ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStorage, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)"
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection so an in-memory database is shared by every query
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load() (codec.Record, error) {
	var value string
	err := s.db.QueryRow(sqliteGet, stateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return codec.Record{}, ErrNotFound
	}
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to read state: %w", err)
	}
	return unmarshalRecord([]byte(value))
}

func (s *SQLiteStorage) Save(rec codec.Record) error {
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(sqliteSet, stateKey, string(data)); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear() error {
	if _, err := s.db.Exec(sqliteDelete, stateKey); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
