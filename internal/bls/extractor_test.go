package bls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestExtractSpectrum(t *testing.T) {
	fx := newFixture()
	fx.steps("ScanDimension_1", 20)
	fx.spectrum(ramp(20, 100), 0, 0.01)
	f := fx.open(t)

	data, bounds, err := f.ExtractSpectrum()
	require.NoError(t, err)

	rows, bins := data.Dims()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 100, bins)
	assert.True(t, mat.Equal(ramp(20, 100), data))

	assert.Equal(t, 0.0, bounds.Low)
	assert.InDelta(t, 0.99, bounds.High, 1e-12)
	assert.Len(t, BinAxis(bounds, bins), bins)
}

func TestExtractSpectrumOffsetScale(t *testing.T) {
	fx := newFixture()
	fx.spectrum(ramp(3, 5), -10, 2.5)
	f := fx.open(t)

	_, bounds, err := f.ExtractSpectrum()
	require.NoError(t, err)
	assert.Equal(t, BinBounds{Low: -10, High: 0}, bounds)
}

func TestExtractSpectrumMissingTag(t *testing.T) {
	fx := newFixture()
	fx.steps("ScanDimension_1", 20)
	f := fx.open(t)

	_, _, err := f.ExtractSpectrum()
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestExtractSpectrumMissingRecord(t *testing.T) {
	fx := newFixture()
	fx.scan("Acquire spectrum")
	f := fx.open(t)

	_, _, err := f.ExtractSpectrum()
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestExtractSpectrumShortScale(t *testing.T) {
	fx := newFixture()
	id := fx.scan("Acquire spectrum")
	fx.mem.AddMatrix("measurement/"+id+"/data", ramp(2, 2))
	fx.mem.AddVector("measurement/"+id+"/scale", []float64{1})
	f := fx.open(t)

	_, _, err := f.ExtractSpectrum()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
}
