package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const snapshotFileMode = 0o644

// FileStore keeps the snapshot as a single file on the local filesystem
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path cannot be empty")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

// Save streams r into a pending file next to the target and atomically replaces it.
// Concurrent writers race; whichever rename happens last wins.
func (s *FileStore) Save(ctx context.Context, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	pending, err := renameio.NewPendingFile(s.path,
		renameio.WithTempDir(dir),
		renameio.WithPermissions(snapshotFileMode))
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary snapshot file in %s: %w", dir, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	written, err := io.Copy(pending, r)
	if err != nil {
		return 0, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("failed to move snapshot into place at %s: %w", s.path, err)
	}

	return written, nil
}

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}
	return data, nil
}

func (s *FileStore) Location() string {
	return s.path
}

func (s *FileStore) Close() error {
	return nil
}
