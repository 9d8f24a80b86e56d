package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/GIGAluckman/blsdata/internal/api/handlers"
	"github.com/GIGAluckman/blsdata/internal/processing"
	"github.com/GIGAluckman/blsdata/internal/repository"
	"github.com/GIGAluckman/blsdata/internal/storage"
	"github.com/GIGAluckman/blsdata/pkg/models"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// MaxUploadBytes caps the size of a file sent to the upload route
const MaxUploadBytes = 1 << 30

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, repo repository.MeasurementRepository, s3Service storage.S3Service, source storage.Source, processingSvc processing.ProcessingService) {
	measurementHandler := handlers.NewMeasurementHandler(repo, s3Service, source, processingSvc)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = Version
		resp.Body.Time = time.Now()
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "createMeasurement",
		Method:        http.MethodPost,
		Path:          "/api/measurements",
		Summary:       "Register a measurement",
		Description:   "Creates a catalog entry and returns an upload URL for the HDF5 file",
		Tags:          []string{"Measurements"},
		DefaultStatus: http.StatusCreated,
	}, measurementHandler.CreateMeasurement)

	huma.Register(api, huma.Operation{
		OperationID:   "uploadMeasurementFile",
		Method:        http.MethodPut,
		Path:          "/api/measurements/{id}/file",
		Summary:       "Upload a measurement file",
		Description:   "Stores the HDF5 file of a registered measurement, replacing any previous upload",
		Tags:          []string{"Measurements"},
		MaxBodyBytes:  MaxUploadBytes,
		DefaultStatus: http.StatusNoContent,
	}, measurementHandler.UploadMeasurementFile)

	huma.Register(api, huma.Operation{
		OperationID: "listMeasurements",
		Method:      http.MethodGet,
		Path:        "/api/measurements",
		Summary:     "List measurements",
		Description: "Returns catalog entries, newest first",
		Tags:        []string{"Measurements"},
	}, measurementHandler.ListMeasurements)

	huma.Register(api, huma.Operation{
		OperationID: "getMeasurement",
		Method:      http.MethodGet,
		Path:        "/api/measurements/{id}",
		Summary:     "Get a measurement",
		Tags:        []string{"Measurements"},
	}, measurementHandler.GetMeasurement)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteMeasurement",
		Method:        http.MethodDelete,
		Path:          "/api/measurements/{id}",
		Summary:       "Delete a measurement",
		Description:   "Removes the catalog entry and the stored file",
		Tags:          []string{"Measurements"},
		DefaultStatus: http.StatusNoContent,
	}, measurementHandler.DeleteMeasurement)

	huma.Register(api, huma.Operation{
		OperationID: "processMeasurement",
		Method:      http.MethodPost,
		Path:        "/api/measurements/{id}/process",
		Summary:     "Process a measurement",
		Description: "Extracts the spectrum and reshapes it for the measurement geometry",
		Tags:        []string{"Measurements"},
	}, measurementHandler.ProcessMeasurement)
}
