package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/snapcam/internal/core"

	"github.com/labstack/echo/v4"
)

const (
	ProbePath   = "/probe"
	MembersPath = "/members"
	CameraPath  = "/camera"

	snapshotField = "snapshot"

	msgSnapshotSaved   = "Snapshot saved successfully"
	msgSnapshotMissing = "Snapshot file not found"
	msgSnapshotError   = "Error saving snapshot: %s"
)

type APIService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

type membersResponse struct {
	Members []string `json:"members"`
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
		config:      config,
	}
}

func (service *APIService) SetRoutes(e *echo.Echo) {
	// Set probe route
	e.GET(ProbePath, service.probeHandler)

	e.GET(MembersPath, service.membersHandler)
	e.POST(CameraPath, service.cameraHandler)
}

func (service *APIService) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "API Service is running")
}

func (service *APIService) membersHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, membersResponse{Members: service.coreService.Members()})
}

func (service *APIService) cameraHandler(ctx echo.Context) error {
	file, err := ctx.FormFile(snapshotField)
	if err != nil {
		// Framework errors such as the body limit keep their own status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			slog.Warn("cameraHandler: request rejected while reading snapshot",
				"status", httpErr.Code, "error", err)
			return httpErr
		}
		return service.snapshotErrorResponse(ctx, core.ClassifyUploadError(err))
	}

	result, err := service.coreService.SaveSnapshot(ctx.Request().Context(), file)
	if err != nil {
		return service.snapshotErrorResponse(ctx, err)
	}

	slog.Debug("cameraHandler: snapshot stored", "location", result.Location, "size_bytes", result.Size)
	return ctx.String(http.StatusOK, msgSnapshotSaved)
}

func (service *APIService) snapshotErrorResponse(ctx echo.Context, err error) error {
	if errors.Is(err, core.ErrSnapshotMissing) {
		slog.Warn("cameraHandler: snapshot missing or empty", "status", http.StatusBadRequest)
		return ctx.String(http.StatusBadRequest, msgSnapshotMissing)
	}

	var storageErr *core.StorageError
	if !errors.As(err, &storageErr) {
		storageErr = &core.StorageError{Err: err}
	}
	slog.Error("cameraHandler: failed to save snapshot",
		"status", http.StatusInternalServerError, "error", storageErr.Err)
	return ctx.String(http.StatusInternalServerError, fmt.Sprintf(msgSnapshotError, storageErr.Error()))
}
