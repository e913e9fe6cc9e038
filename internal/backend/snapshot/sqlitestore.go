package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the snapshot as a single row in a SQLite database
type SQLiteStore struct {
	db               *sql.DB
	connectionString string
	name             string
}

func NewSQLiteStore(connectionString, name string) (*SQLiteStore, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("sqlite connection string cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("snapshot path cannot be empty")
	}

	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps in-memory databases shared and serializes writers
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:               db,
		connectionString: connectionString,
		name:             name,
	}
	if err := store.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		path TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO snapshots (path, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.name, data, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to store snapshot %s: %w", s.name, err)
	}
	return int64(len(data)), nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, "SELECT data FROM snapshots WHERE path = ?", s.name)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", s.name, err)
	}
	return data, nil
}

func (s *SQLiteStore) Location() string {
	return fmt.Sprintf("sqlite:%s#%s", s.connectionString, s.name)
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
