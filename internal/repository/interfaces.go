package repository

import (
	"context"
	"errors"

	"github.com/GIGAluckman/blsdata/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no measurement has the requested ID
var ErrNotFound = errors.New("measurement not found")

// MeasurementRepository defines the interface for measurement catalog operations
type MeasurementRepository interface {
	Create(ctx context.Context, m *models.Measurement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Measurement, error)
	List(ctx context.Context, limit, offset int) ([]*models.Measurement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
