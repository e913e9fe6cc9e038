package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSnapshotMissing means the upload carried no usable snapshot file
var ErrSnapshotMissing = errors.New("snapshot file not found")

// StorageError means the snapshot was present but could not be persisted
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ClassifyUploadError maps a failure to extract the snapshot part from a request.
// Only a request without a snapshot part counts as missing input; a part that was sent
// but could not be read (truncated stream, disconnect, temp file spill) is a StorageError.
func ClassifyUploadError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, http.ErrMissingFile) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, http.ErrMissingBoundary) {
		return ErrSnapshotMissing
	}
	return &StorageError{Err: fmt.Errorf("failed to read uploaded snapshot: %w", err)}
}
