package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/GIGAluckman/blsdata/internal/bls"
	"github.com/GIGAluckman/blsdata/internal/repository"
	"github.com/GIGAluckman/blsdata/internal/storage"
	"github.com/GIGAluckman/blsdata/pkg/models"
)

// ErrMissingLength is returned when a scan geometry has no physical length
var ErrMissingLength = errors.New("scan length is required for this geometry")

// Opener opens a measurement file from a local path
type Opener func(path string, opts ...bls.Option) (*bls.File, error)

type ProcessingService interface {
	Process(ctx context.Context, id uuid.UUID, policy bls.Policy) (*models.ProcessResult, error)
}

type processingService struct {
	source     storage.Source
	repository repository.MeasurementRepository
	open       Opener
	opts       []bls.Option
	log        zerolog.Logger
}

// NewProcessingService wires the catalog, file source and opener. opts are
// passed to every opened file.
func NewProcessingService(source storage.Source, repo repository.MeasurementRepository, open Opener, log zerolog.Logger, opts ...bls.Option) ProcessingService {
	return &processingService{
		source:     source,
		repository: repo,
		open:       open,
		opts:       opts,
		log:        log,
	}
}

func (s *processingService) Process(ctx context.Context, id uuid.UUID, policy bls.Policy) (*models.ProcessResult, error) {
	// No operator is attached to a request.
	if policy.Kind == bls.PolicyInteractive {
		return nil, fmt.Errorf("%w: interactive selection needs a terminal", bls.ErrUnsupportedPolicy)
	}

	m, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log := s.log.With().Str("measurement_id", m.ID).Str("geometry", string(m.Geometry)).Logger()

	path, release, err := s.source.Fetch(ctx, m.FileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", m.FileKey, err)
	}
	defer release()

	opts := append([]bls.Option{bls.WithLogger(log)}, s.opts...)
	f, err := s.open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := Run(ctx, f, m, policy)
	if err != nil {
		log.Error().Err(err).Str("policy", policy.String()).Msg("Processing failed")
		return nil, err
	}

	log.Info().Ints("shape", result.Counts.Shape).Str("policy", policy.String()).Msg("Processing complete")
	return result, nil
}

// Run dispatches to the geometry of m and converts the result to its
// geometry-independent form.
func Run(ctx context.Context, f *bls.File, m *models.Measurement, policy bls.Policy) (*models.ProcessResult, error) {
	out := &models.ProcessResult{MeasurementID: m.ID, Geometry: m.Geometry}

	switch m.Geometry {
	case models.GeometryRFSweep, models.GeometryFieldSweep:
		var res *models.SweepResult
		var err error
		axis := models.Axis{Name: "frequency", Unit: "GHz"}
		if m.Geometry == models.GeometryRFSweep {
			res, err = f.RFSweep(ctx, policy)
		} else {
			res, err = f.FieldSweep(ctx, policy)
			axis = models.Axis{Name: "current", Unit: "A"}
		}
		if err != nil {
			return nil, err
		}
		axis.Values = res.Stimulus
		out.Counts, out.Repetitions, out.Freq = res.Counts, res.Repetitions, res.Freq
		out.Axes = []models.Axis{axis}

	case models.GeometryLineScan:
		if m.Length1 == nil {
			return nil, ErrMissingLength
		}
		res, err := f.LineScan(ctx, *m.Length1, policy)
		if err != nil {
			return nil, err
		}
		out.Counts, out.Freq = res.Counts, res.Freq
		out.Axes = []models.Axis{{Name: "position", Values: res.Position}}

	case models.GeometryMap2D:
		if m.Length1 == nil || m.Length2 == nil {
			return nil, ErrMissingLength
		}
		res, err := f.Map2D(ctx, *m.Length1, *m.Length2, policy)
		if err != nil {
			return nil, err
		}
		out.Counts, out.Freq = res.Counts, res.Freq
		out.Axes = []models.Axis{
			{Name: "position_1", Values: res.Position1},
			{Name: "position_2", Values: res.Position2},
		}

	default:
		return nil, fmt.Errorf("unknown geometry %q", m.Geometry)
	}

	return out, nil
}
