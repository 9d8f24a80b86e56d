// Package selector provides bls.BandSelector implementations: a fixed band
// for scripted runs and tests, and a terminal dialog backed by a rendered
// spectrum plot.
package selector

import (
	"context"

	"github.com/GIGAluckman/blsdata/internal/bls"
)

// Fixed always selects the band between Low and High. Both must be bin axis
// samples.
type Fixed struct {
	Low  float64
	High float64
}

var _ bls.BandSelector = Fixed{}

func (s Fixed) SelectRange(_ context.Context, _, axis []float64) (bls.Band, error) {
	lo, err := exactIndex(axis, s.Low)
	if err != nil {
		return bls.Band{}, err
	}
	hi, err := exactIndex(axis, s.High)
	if err != nil {
		return bls.Band{}, err
	}
	return bandOf(axis, lo, hi), nil
}

func exactIndex(axis []float64, freq float64) (int, error) {
	i, ok := bls.IndexOf(axis, freq)
	if !ok {
		fe := &bls.FrequencyError{Frequency: freq, Bins: len(axis)}
		if len(axis) > 0 {
			fe.Low, fe.High = axis[0], axis[len(axis)-1]
		}
		return 0, fe
	}
	return i, nil
}

// bandOf orders two indices and pairs them with their frequencies.
func bandOf(axis []float64, a, b int) bls.Band {
	if a > b {
		a, b = b, a
	}
	return bls.Band{LowIndex: a, HighIndex: b, Low: axis[a], High: axis[b]}
}
