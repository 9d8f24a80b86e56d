package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GIGAluckman/blsdata/internal/repository"
	"github.com/GIGAluckman/blsdata/pkg/models"
	"github.com/google/uuid"
)

// PostgresMeasurementRepository implements MeasurementRepository for PostgreSQL
type PostgresMeasurementRepository struct {
	db *sql.DB
}

// NewPostgresMeasurementRepository creates a new PostgreSQL measurement repository
func NewPostgresMeasurementRepository(db *sql.DB) repository.MeasurementRepository {
	return &PostgresMeasurementRepository{db: db}
}

// Create inserts a new measurement. ID and CreatedAt are filled in when empty.
func (r *PostgresMeasurementRepository) Create(ctx context.Context, m *models.Measurement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO measurements (id, name, geometry, file_key, length_1, length_2, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		string(m.Geometry),
		m.FileKey,
		nullFloat(m.Length1),
		nullFloat(m.Length2),
		m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert measurement: %w", err)
	}
	return nil
}

// GetByID retrieves a measurement by ID
func (r *PostgresMeasurementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Measurement, error) {
	query := `
		SELECT id, name, geometry, file_key, length_1, length_2, created_at
		FROM measurements
		WHERE id = $1`

	m, err := scanMeasurement(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns a page of measurements, newest first
func (r *PostgresMeasurementRepository) List(ctx context.Context, limit, offset int) ([]*models.Measurement, error) {
	query := `
		SELECT id, name, geometry, file_key, length_1, length_2, created_at
		FROM measurements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a measurement from the catalog
func (r *PostgresMeasurementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(row rowScanner) (*models.Measurement, error) {
	var m models.Measurement
	var geometry string
	var length1, length2 sql.NullFloat64

	err := row.Scan(
		&m.ID,
		&m.Name,
		&geometry,
		&m.FileKey,
		&length1,
		&length2,
		&m.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.Geometry = models.Geometry(geometry)
	if length1.Valid {
		m.Length1 = &length1.Float64
	}
	if length2.Valid {
		m.Length2 = &length2.Float64
	}
	return &m, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
