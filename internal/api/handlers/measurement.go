package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GIGAluckman/blsdata/internal/bls"
	"github.com/GIGAluckman/blsdata/internal/processing"
	"github.com/GIGAluckman/blsdata/internal/repository"
	"github.com/GIGAluckman/blsdata/internal/storage"
	"github.com/GIGAluckman/blsdata/pkg/models"
)

// MeasurementHandler handles measurement catalog and processing requests
type MeasurementHandler struct {
	repo          repository.MeasurementRepository
	s3Service     storage.S3Service
	source        storage.Source
	processingSvc processing.ProcessingService
}

// NewMeasurementHandler creates a new measurement handler. s3Service may be
// nil when files live on local disk; uploads then go through this API.
func NewMeasurementHandler(repo repository.MeasurementRepository, s3Service storage.S3Service, source storage.Source, processingSvc processing.ProcessingService) *MeasurementHandler {
	return &MeasurementHandler{
		repo:          repo,
		s3Service:     s3Service,
		source:        source,
		processingSvc: processingSvc,
	}
}

// CreateMeasurement registers a measurement and returns an upload URL
func (h *MeasurementHandler) CreateMeasurement(ctx context.Context, req *models.CreateMeasurementRequest) (*models.CreateMeasurementResponse, error) {
	body := req.Body
	if !body.Geometry.Valid() {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Unknown geometry %q", body.Geometry), nil)
	}
	switch body.Geometry {
	case models.GeometryLineScan:
		if body.Length1 == nil {
			return nil, huma.Error400BadRequest("length_1 is required for line scans", nil)
		}
	case models.GeometryMap2D:
		if body.Length1 == nil || body.Length2 == nil {
			return nil, huma.Error400BadRequest("length_1 and length_2 are required for 2D maps", nil)
		}
	}

	id := uuid.New()
	m := &models.Measurement{
		ID:       id.String(),
		Name:     body.Name,
		Geometry: body.Geometry,
		FileKey:  fmt.Sprintf("measurements/%s.h5", id),
		Length1:  body.Length1,
		Length2:  body.Length2,
	}

	var resp models.CreateMeasurementResponse
	if h.s3Service != nil {
		contentType := body.ContentType
		if contentType == "" {
			contentType = "application/x-hdf5"
		}
		uploadURL, err := h.s3Service.GenerateUploadURL(ctx, m.FileKey, contentType)
		if err != nil {
			if strings.Contains(err.Error(), "invalid content type") {
				return nil, huma.Error400BadRequest("Upload format not supported", err)
			}
			return nil, huma.Error500InternalServerError("Failed to prepare upload", err)
		}
		resp.Body.UploadURL = uploadURL
		resp.Body.ExpiresIn = int(storage.UploadExpiry.Seconds())
	} else {
		resp.Body.UploadURL = fmt.Sprintf("/api/measurements/%s/file", m.ID)
	}

	if err := h.repo.Create(ctx, m); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create measurement", err)
	}
	log.Info().Str("measurementID", m.ID).Str("geometry", string(m.Geometry)).Str("fileKey", m.FileKey).Msg("Measurement registered")

	resp.Body.Measurement = *m
	return &resp, nil
}

// GetMeasurement returns one catalog entry
func (h *MeasurementHandler) GetMeasurement(ctx context.Context, req *models.MeasurementIDRequest) (*models.GetMeasurementResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}
	m, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError(err)
	}
	return &models.GetMeasurementResponse{Body: *m}, nil
}

// UploadMeasurementFile stores the HDF5 file of a registered measurement
func (h *MeasurementHandler) UploadMeasurementFile(ctx context.Context, req *models.UploadMeasurementFileRequest) (*struct{}, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}
	if len(req.RawBody) == 0 {
		return nil, huma.Error400BadRequest("Empty file", nil)
	}
	m, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError(err)
	}

	if err := h.source.Store(ctx, m.FileKey, bytes.NewReader(req.RawBody)); err != nil {
		log.Error().Err(err).Str("measurementID", m.ID).Str("fileKey", m.FileKey).Msg("Failed to store measurement file")
		return nil, huma.Error500InternalServerError("Failed to store file", err)
	}
	log.Info().Str("measurementID", m.ID).Int("bytes", len(req.RawBody)).Msg("Measurement file stored")
	return nil, nil
}

// ListMeasurements returns a page of the catalog
func (h *MeasurementHandler) ListMeasurements(ctx context.Context, req *models.ListMeasurementsRequest) (*models.ListMeasurementsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	list, err := h.repo.List(ctx, limit, req.Offset)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list measurements", err)
	}

	resp := &models.ListMeasurementsResponse{}
	resp.Body.Measurements = make([]models.Measurement, 0, len(list))
	for _, m := range list {
		resp.Body.Measurements = append(resp.Body.Measurements, *m)
	}
	return resp, nil
}

// DeleteMeasurement removes the catalog entry and its stored file
func (h *MeasurementHandler) DeleteMeasurement(ctx context.Context, req *models.MeasurementIDRequest) (*struct{}, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}
	m, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError(err)
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		return nil, catalogError(err)
	}
	if err := h.source.Remove(ctx, m.FileKey); err != nil {
		// The catalog entry is gone; an orphaned file is only logged.
		log.Warn().Err(err).Str("measurementID", m.ID).Str("fileKey", m.FileKey).Msg("Failed to remove measurement file")
	}
	log.Info().Str("measurementID", m.ID).Msg("Measurement deleted")
	return nil, nil
}

// ProcessMeasurement runs extraction on a stored measurement
func (h *MeasurementHandler) ProcessMeasurement(ctx context.Context, req *models.ProcessMeasurementRequest) (*models.ProcessMeasurementResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}

	var policy bls.Policy
	switch req.Body.Policy {
	case "full":
		policy = bls.Full()
	case "range":
		if req.Body.Low == nil || req.Body.High == nil {
			return nil, huma.Error400BadRequest("low and high are required for the range policy", nil)
		}
		policy = bls.ExplicitRange(*req.Body.Low, *req.Body.High)
	default:
		return nil, huma.Error400BadRequest(fmt.Sprintf("Unsupported policy %q", req.Body.Policy), nil)
	}

	log.Info().Str("measurementID", req.ID).Str("policy", policy.String()).Msg("Processing request received")
	res, err := h.processingSvc.Process(ctx, id, policy)
	if err != nil {
		return nil, processError(err)
	}
	return &models.ProcessMeasurementResponse{Body: *res}, nil
}

func catalogError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return huma.Error404NotFound("Measurement not found", err)
	}
	return huma.Error500InternalServerError("Catalog lookup failed", err)
}

// processError maps extraction failures to HTTP statuses: bad requests for
// what the caller asked, unprocessable for what the file contains.
func processError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return huma.Error404NotFound("Measurement not found", err)
	case errors.Is(err, bls.ErrUnsupportedPolicy),
		errors.Is(err, bls.ErrFrequencyNotFound),
		errors.Is(err, processing.ErrMissingLength):
		return huma.Error400BadRequest(err.Error(), err)
	case errors.Is(err, bls.ErrTagNotFound),
		errors.Is(err, bls.ErrAmbiguousTag),
		errors.Is(err, bls.ErrInvalidField),
		errors.Is(err, bls.ErrRecordNotFound),
		errors.Is(err, bls.ErrShape):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	}
	log.Error().Err(err).Msg("Processing failed")
	return huma.Error500InternalServerError("Processing failed", err)
}
