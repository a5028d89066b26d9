package persist

import (
	"errors"
	"fmt"
	"os"

	"pokefinder/internal/codec"
)

// FileStorage keeps the state as a JSON object in a single file
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed port; the file is created on first Save
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Path() string { return f.path }

func (f *FileStorage) Load() (codec.Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return codec.Record{}, ErrNotFound
	}
	if err != nil {
		return codec.Record{}, fmt.Errorf("failed to read state file: %w", err)
	}
	return unmarshalRecord(data)
}

func (f *FileStorage) Save(rec codec.Record) error {
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	return writeFileAtomic(f.path, data)
}

func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
