package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	TypeFile   = "file"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// ErrNotFound is returned by Load when no snapshot has been saved yet
var ErrNotFound = errors.New("snapshot not found")

// Store persists exactly one snapshot object at a fixed location.
// Every Save replaces the previous content entirely.
type Store interface {
	// Save writes all bytes from r and returns the number of bytes stored
	Save(ctx context.Context, r io.Reader) (int64, error)
	Load(ctx context.Context) ([]byte, error)
	// Location describes where the snapshot lives, for logging
	Location() string
	Close() error
}

// NewStore creates a snapshot store of the given type.
// path is the file path (file), the row key (sqlite) or the key (redis).
func NewStore(storeType, path, connectionString string) (store Store, err error) {
	switch storeType {
	case TypeFile, "":
		store, err = NewFileStore(path)
	case TypeSQLite:
		store, err = NewSQLiteStore(connectionString, path)
	case TypeRedis:
		store, err = NewRedisStore(connectionString, path)
	default:
		return nil, fmt.Errorf("unsupported snapshot store type: %s", storeType)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("snapshot store initialized", "type", storeType, "location", store.Location())
	return store, nil
}
