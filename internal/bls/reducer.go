package bls

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/GIGAluckman/blsdata/pkg/models"
)

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	out := floats.Span(make([]float64, n), start, stop)
	out[n-1] = stop
	return out
}

// BinAxis returns the frequency of each of the n spectrum bins.
func BinAxis(b BinBounds, n int) []float64 {
	return Linspace(b.Low, b.High, n)
}

// IndexOf returns the index of the first axis sample equal to freq.
func IndexOf(axis []float64, freq float64) (int, bool) {
	for i, v := range axis {
		if v == freq {
			return i, true
		}
	}
	return -1, false
}

// BinIntensity sums the intensity of every bin over all samples.
func BinIntensity(data mat.Matrix) []float64 {
	rows, bins := data.Dims()
	out := make([]float64, bins)
	col := make([]float64, rows)
	for j := range out {
		mat.Col(col, j, data)
		out[j] = floats.Sum(col)
	}
	return out
}

// bandSum sums each row of data over the columns lo through hi.
func bandSum(data *mat.Dense, lo, hi int) []float64 {
	rows, _ := data.Dims()
	out := make([]float64, rows)
	for i := range out {
		out[i] = floats.Sum(data.RawRowView(i)[lo : hi+1])
	}
	return out
}

// reduction is the outcome of applying a policy to the bin axis. Exactly one
// of matrix and vector is set.
type reduction struct {
	matrix *mat.Dense
	vector []float64
	freq   models.FreqInfo
}

func (r reduction) array() models.Array {
	if r.matrix != nil {
		return denseArray(r.matrix)
	}
	return vectorArray(r.vector)
}

func (f *File) reduce(ctx context.Context, data *mat.Dense, bounds BinBounds, p Policy) (reduction, error) {
	samples, bins := data.Dims()

	switch p.Kind {
	case PolicyFull:
		return reduction{
			matrix: data,
			freq:   models.FreqInfo{Axis: BinAxis(bounds, bins)},
		}, nil

	case PolicyRange:
		axis := BinAxis(bounds, bins)
		lo, ok := IndexOf(axis, p.Low)
		if !ok {
			return reduction{}, &FrequencyError{Frequency: p.Low, Low: bounds.Low, High: bounds.High, Bins: bins}
		}
		hi, ok := IndexOf(axis, p.High)
		if !ok {
			return reduction{}, &FrequencyError{Frequency: p.High, Low: bounds.Low, High: bounds.High, Bins: bins}
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		f.log.Debug().Int("low_index", lo).Int("high_index", hi).Msg("Summing explicit band")
		return reduction{vector: bandSum(data, lo, hi)}, nil

	case PolicyInteractive:
		if f.selector == nil {
			return reduction{}, fmt.Errorf("interactive selection: %w: no band selector configured", ErrUnsupportedPolicy)
		}
		axis := BinAxis(bounds, bins)
		band, err := f.selector.SelectRange(ctx, BinIntensity(data), axis)
		if err != nil {
			return reduction{}, err
		}
		lo, hi := band.LowIndex, band.HighIndex
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo < 0 || hi >= bins {
			return reduction{}, fmt.Errorf("selected band [%d, %d] outside %d bins", lo, hi, bins)
		}
		f.log.Info().
			Float64("low", band.Low).
			Float64("high", band.High).
			Int("samples", samples).
			Msg("Band selected")
		return reduction{
			vector: bandSum(data, lo, hi),
			freq:   models.FreqInfo{Bounds: []float64{band.Low, band.High}},
		}, nil
	}

	return reduction{}, fmt.Errorf("%w: %s", ErrUnsupportedPolicy, p)
}
