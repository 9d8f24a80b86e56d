package bls

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/GIGAluckman/blsdata/internal/container"
)

// BinBounds are the frequencies of the first and last spectrum bin, in GHz.
type BinBounds struct {
	Low  float64
	High float64
}

// ExtractSpectrum reads the spectrum record: the intensity matrix with one
// row per sample and one column per frequency bin, and the bin axis bounds
// derived from the record's scale.
func (f *File) ExtractSpectrum() (*mat.Dense, BinBounds, error) {
	id, err := f.FindTag(TagAcquireSpectrum)
	if err != nil {
		return nil, BinBounds{}, fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	}

	data, err := f.src.Matrix(container.Join(measurementGroup, id, "data"))
	if err != nil {
		return nil, BinBounds{}, recordError(id, "data", err)
	}
	scale, err := f.src.Vector(container.Join(measurementGroup, id, "scale"))
	if err != nil {
		return nil, BinBounds{}, recordError(id, "scale", err)
	}
	if len(scale) < 2 {
		return nil, BinBounds{}, fmt.Errorf("measurement %s: scale has %d values, want origin and increment", id, len(scale))
	}

	_, bins := data.Dims()
	origin, increment := scale[0], scale[1]
	bounds := BinBounds{
		Low:  origin,
		High: origin + increment*float64(bins-1),
	}

	return data, bounds, nil
}

func recordError(id, name string, err error) error {
	if errors.Is(err, container.ErrNotFound) {
		return fmt.Errorf("measurement %s/%s: %w: %w", id, name, ErrRecordNotFound, err)
	}
	return fmt.Errorf("failed to read measurement %s/%s: %w", id, name, err)
}
