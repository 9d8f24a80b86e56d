package bls

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/GIGAluckman/blsdata/pkg/models"
)

// RFSweep processes a sweep of the RF frequency applied to the antenna. The
// stimulus axis holds the applied frequencies in GHz.
func (f *File) RFSweep(ctx context.Context, p Policy) (*models.SweepResult, error) {
	return f.sweep(ctx, TagFrequency, p)
}

// FieldSweep processes a sweep of the field coil current. The stimulus axis
// holds the applied currents.
func (f *File) FieldSweep(ctx context.Context, p Policy) (*models.SweepResult, error) {
	return f.sweep(ctx, TagCurrent, p)
}

func (f *File) sweep(ctx context.Context, stimulus Tag, p Policy) (*models.SweepResult, error) {
	data, bounds, err := f.ExtractSpectrum()
	if err != nil {
		return nil, err
	}
	sw, err := f.sweepDefinition(stimulus)
	if err != nil {
		return nil, err
	}
	reps, repeated, err := f.RepetitionCount()
	if err != nil {
		return nil, err
	}

	red, err := f.reduce(ctx, data, bounds, p)
	if err != nil {
		return nil, err
	}

	counts := red.array()
	if repeated {
		if counts, err = stackRepetitions(counts, reps); err != nil {
			return nil, err
		}
	} else {
		reps = 0
	}

	f.log.Info().
		Str("stimulus", f.labels[stimulus]).
		Ints("shape", counts.Shape).
		Int("stimulus_steps", sw.Steps).
		Msg("Processed sweep")

	return &models.SweepResult{
		Counts:      counts,
		Repetitions: reps,
		Stimulus:    Linspace(sw.Start, sw.Stop, sw.Steps),
		Freq:        red.freq,
	}, nil
}

// LineScan processes a 1D spatial scan of the given physical length. Under
// the Full policy the counts are (bins, samples); otherwise (samples).
func (f *File) LineScan(ctx context.Context, length float64, p Policy) (*models.LineScanResult, error) {
	data, bounds, err := f.ExtractSpectrum()
	if err != nil {
		return nil, err
	}
	steps, err := f.ScanStepCount(1)
	if err != nil {
		return nil, err
	}

	samples, _ := data.Dims()
	if samples != steps {
		f.log.Warn().Int("samples", samples).Int("steps", steps).Msg("Sample count differs from scan steps")
	}

	red, err := f.reduce(ctx, data, bounds, p)
	if err != nil {
		return nil, err
	}

	counts := red.array()
	if red.matrix != nil {
		counts = denseArray(red.matrix.T())
	}

	f.log.Info().Ints("shape", counts.Shape).Float64("length", length).Msg("Processed line scan")

	return &models.LineScanResult{
		Counts:   counts,
		Position: scanAxis(steps, length),
		Freq:     red.freq,
	}, nil
}

// Map2D processes a 2D spatial scan covering length1 × length2. The counts
// are arranged as (steps1, steps2). The Full policy is not available.
func (f *File) Map2D(ctx context.Context, length1, length2 float64, p Policy) (*models.MapResult, error) {
	if p.Kind == PolicyFull {
		return nil, fmt.Errorf("2D map: %w: %s", ErrUnsupportedPolicy, p)
	}

	data, bounds, err := f.ExtractSpectrum()
	if err != nil {
		return nil, err
	}
	steps1, err := f.ScanStepCount(1)
	if err != nil {
		return nil, err
	}
	steps2, err := f.ScanStepCount(2)
	if err != nil {
		return nil, err
	}

	samples, _ := data.Dims()
	if samples != steps1*steps2 {
		return nil, &ShapeError{Samples: samples, Target: fmt.Sprintf("%dx%d grid", steps1, steps2)}
	}

	red, err := f.reduce(ctx, data, bounds, p)
	if err != nil {
		return nil, err
	}
	counts, err := reshapeGrid(red.vector, steps1, steps2)
	if err != nil {
		return nil, err
	}

	f.log.Info().Ints("shape", counts.Shape).Msg("Processed 2D map")

	return &models.MapResult{
		Counts:    counts,
		Position1: scanAxis(steps1, length1),
		Position2: scanAxis(steps2, length2),
		Freq:      red.freq,
	}, nil
}

// scanAxis spreads steps positions evenly over [0, length].
func scanAxis(steps int, length float64) []float64 {
	axis := Linspace(0, 1, steps)
	floats.Scale(length, axis)
	return axis
}
