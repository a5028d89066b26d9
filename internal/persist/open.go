package persist

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// OpenStorage opens the local storage for driver under dir
func OpenStorage(ctx context.Context, driver, dir string, log zerolog.Logger) (Storage, error) {
	switch driver {
	case "", DriverFile:
		return NewFileStorage(filepath.Join(dir, "state.json")), nil
	case DriverBadger:
		return OpenBadger(BadgerConfig{
			Path:       filepath.Join(dir, "state.badger"),
			SyncWrites: true,
			Logger:     &log,
		})
	case DriverSQLite:
		return OpenSQLite(ctx, filepath.Join(dir, "state.db"))
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
