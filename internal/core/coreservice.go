package core

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/jo-hoe/snapcam/internal/backend/members"
	"github.com/jo-hoe/snapcam/internal/backend/snapshot"
)

type CoreService struct {
	config *ServiceConfig
	roster *members.Roster
	store  snapshot.Store
}

// SnapshotResult reports where an upload was stored and what it looked like
type SnapshotResult struct {
	Location string
	Size     int64
	Image    *snapshot.ImageInfo
}

func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	roster, err := members.NewRoster(config.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize member roster: %w", err)
	}

	store, err := snapshot.NewStore(config.Snapshot.Type, config.Snapshot.Path, config.Snapshot.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	return &CoreService{
		config: config,
		roster: roster,
		store:  store,
	}, nil
}

// Members returns the configured member names in order
func (service *CoreService) Members() []string {
	return service.roster.List()
}

// SaveSnapshot persists the uploaded file, replacing any earlier snapshot.
// It returns ErrSnapshotMissing for absent or empty uploads and *StorageError for everything else.
func (service *CoreService) SaveSnapshot(ctx context.Context, upload *multipart.FileHeader) (*SnapshotResult, error) {
	if upload == nil || upload.Size == 0 {
		return nil, ErrSnapshotMissing
	}

	src, err := upload.Open()
	if err != nil {
		return nil, &StorageError{Err: fmt.Errorf("failed to open uploaded file: %w", err)}
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("failed to close uploaded file reader", "error", cerr, "filename", upload.Filename)
		}
	}()

	written, err := service.store.Save(ctx, src)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	result := &SnapshotResult{
		Location: service.store.Location(),
		Size:     written,
		Image:    service.inspect(upload),
	}

	attrs := []any{"location", result.Location, "size_bytes", result.Size, "filename", upload.Filename}
	if result.Image != nil {
		attrs = append(attrs, "format", result.Image.Format, "width", result.Image.Width, "height", result.Image.Height)
	}
	slog.Info("snapshot saved", attrs...)

	return result, nil
}

// inspect is informational only; undecodable uploads are stored as-is
func (service *CoreService) inspect(upload *multipart.FileHeader) *snapshot.ImageInfo {
	src, err := upload.Open()
	if err != nil {
		slog.Warn("could not reopen upload for inspection", "error", err, "filename", upload.Filename)
		return nil
	}
	defer func() { _ = src.Close() }()

	info, err := snapshot.Inspect(src)
	if err != nil {
		slog.Warn("snapshot is not a recognized image", "error", err, "filename", upload.Filename)
		return nil
	}
	return &info
}

func (service *CoreService) Close() error {
	return service.store.Close()
}
