package bls

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineScanFixture() *fixture {
	fx := newFixture()
	fx.steps("ScanDimension_1", 20)
	fx.spectrum(ramp(20, 100), 0, 0.01)
	return fx
}

func TestLineScanFull(t *testing.T) {
	f := lineScanFixture().open(t)

	res, err := f.LineScan(context.Background(), 5.0, Full())
	require.NoError(t, err)

	assert.Equal(t, []int{100, 20}, res.Counts.Shape)
	for _, ij := range [][2]int{{0, 0}, {0, 19}, {99, 0}, {42, 7}} {
		bin, sample := ij[0], ij[1]
		assert.Equal(t, float64(sample*100+bin), res.Counts.At(bin, sample))
	}

	require.Len(t, res.Position, 20)
	assert.Equal(t, 0.0, res.Position[0])
	assert.Equal(t, 5.0, res.Position[19])
	assert.InDelta(t, 5.0/19, res.Position[1], 1e-12)

	require.Len(t, res.Freq.Axis, 100)
	assert.Equal(t, 0.0, res.Freq.Axis[0])
	assert.InDelta(t, 0.99, res.Freq.Axis[99], 1e-12)
	assert.Nil(t, res.Freq.Bounds)
}

func TestLineScanExplicitRange(t *testing.T) {
	f := lineScanFixture().open(t)

	res, err := f.LineScan(context.Background(), 5.0, ExplicitRange(0.10, 0.20))
	require.NoError(t, err)

	assert.Equal(t, []int{20}, res.Counts.Shape)
	for i := 0; i < 20; i++ {
		// Columns 10 through 20 of row i: sum(100*i + j).
		want := float64(1100*i + 165)
		assert.Equal(t, want, res.Counts.At(i), "sample %d", i)
	}
	assert.Nil(t, res.Freq.Axis)
	assert.Nil(t, res.Freq.Bounds)
	assert.Len(t, res.Position, 20)
}

func TestLineScanInteractive(t *testing.T) {
	sel := &stubSelector{band: Band{LowIndex: 10, HighIndex: 20, Low: 0.10, High: 0.20}}
	f := lineScanFixture().open(t, WithSelector(sel))

	res, err := f.LineScan(context.Background(), 2.0, Interactive())
	require.NoError(t, err)

	assert.Equal(t, []int{20}, res.Counts.Shape)
	assert.Equal(t, 165.0, res.Counts.At(0))
	assert.Equal(t, []float64{0.10, 0.20}, res.Freq.Bounds)
	assert.Equal(t, 2.0, res.Position[19])
}

func TestLineScanFrequencyNotFound(t *testing.T) {
	f := lineScanFixture().open(t)

	_, err := f.LineScan(context.Background(), 5.0, ExplicitRange(0.105, 0.20))
	assert.ErrorIs(t, err, ErrFrequencyNotFound)
}

func sweepFixture(samples int, reps int) *fixture {
	fx := newFixture()
	fx.sweep("Frequency (GHz)", 1, 3, 5)
	if reps >= 0 {
		fx.repetitions(reps)
	}
	fx.spectrum(ramp(samples, 4), 10, 0.5)
	return fx
}

func TestRFSweepWithoutRepetitions(t *testing.T) {
	f := sweepFixture(5, -1).open(t)

	res, err := f.RFSweep(context.Background(), ExplicitRange(10, 11))
	require.NoError(t, err)

	assert.Equal(t, []int{5}, res.Counts.Shape)
	assert.Zero(t, res.Repetitions)
	assert.Equal(t, []float64{1, 1.5, 2, 2.5, 3}, res.Stimulus)
	// Bins 0..2 of each row: 3*4*i + 0 + 1 + 2.
	assert.Equal(t, 3.0, res.Counts.At(0))
	assert.Equal(t, 15.0, res.Counts.At(1))
}

func TestRFSweepRepetitions(t *testing.T) {
	f := sweepFixture(15, 3).open(t)

	res, err := f.RFSweep(context.Background(), ExplicitRange(10, 11.5))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 5}, res.Counts.Shape)
	assert.Equal(t, 3, res.Repetitions)
	// Row r*5+s sums all four bins: 4*(4*row) + 6.
	for r := 0; r < 3; r++ {
		for s := 0; s < 5; s++ {
			row := r*5 + s
			assert.Equal(t, float64(16*row+6), res.Counts.At(r, s))
		}
	}
}

func TestRFSweepFullRepetitions(t *testing.T) {
	f := sweepFixture(10, 2).open(t)

	res, err := f.RFSweep(context.Background(), Full())
	require.NoError(t, err)

	assert.Equal(t, []int{2, 5, 4}, res.Counts.Shape)
	assert.Equal(t, float64(7*4+3), res.Counts.At(1, 2, 3))
	assert.Equal(t, []float64{10, 10.5, 11, 11.5}, res.Freq.Axis)
}

func TestRFSweepRepetitionShapeError(t *testing.T) {
	f := sweepFixture(10, 3).open(t)

	_, err := f.RFSweep(context.Background(), Full())
	assert.ErrorIs(t, err, ErrShape)

	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 10, se.Samples)
}

func TestRFSweepMissingStimulus(t *testing.T) {
	fx := newFixture()
	fx.spectrum(ramp(4, 4), 0, 1)
	f := fx.open(t)

	_, err := f.RFSweep(context.Background(), Full())
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestFieldSweep(t *testing.T) {
	fx := newFixture()
	fx.sweep(DefaultCurrentLabel, -1, 1, 3)
	fx.spectrum(ramp(3, 2), 0, 1)
	f := fx.open(t)

	res, err := f.FieldSweep(context.Background(), ExplicitRange(0, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, res.Stimulus)
	assert.Equal(t, []float64{1, 5, 9}, res.Counts.Data)
}

func mapFixture(samples, steps1, steps2 int) *fixture {
	fx := newFixture()
	fx.steps("ScanDimension_2", steps2)
	fx.spectrum(ramp(samples, 3), 0, 1)
	fx.steps("ScanDimension_1", steps1)
	return fx
}

func TestMap2D(t *testing.T) {
	f := mapFixture(12, 3, 4).open(t)

	res, err := f.Map2D(context.Background(), 1.0, 6.0, ExplicitRange(0, 2))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4}, res.Counts.Shape)
	// Row n sums 3n, 3n+1 and 3n+2.
	assert.Equal(t, float64(9*(1*4+2)+3), res.Counts.At(1, 2))
	assert.Equal(t, []float64{0, 0.5, 1}, res.Position1)
	assert.Equal(t, []float64{0, 2, 4, 6}, res.Position2)
	assert.Nil(t, res.Freq.Bounds)
}

func TestMap2DInteractive(t *testing.T) {
	sel := &stubSelector{band: Band{LowIndex: 0, HighIndex: 0, Low: 0, High: 0}}
	f := mapFixture(6, 2, 3).open(t, WithSelector(sel))

	res, err := f.Map2D(context.Background(), 1, 1, Interactive())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3, 6, 9, 12, 15}, res.Counts.Data)
	assert.Equal(t, []float64{0, 0}, res.Freq.Bounds)
}

func TestMap2DShapeError(t *testing.T) {
	sel := &stubSelector{}
	f := mapFixture(11, 3, 4).open(t, WithSelector(sel))

	_, err := f.Map2D(context.Background(), 1, 1, Interactive())
	assert.ErrorIs(t, err, ErrShape)
	assert.Zero(t, sel.calls, "selector must not be shown for an unusable file")
}

func TestMap2DFullUnsupported(t *testing.T) {
	f := mapFixture(12, 3, 4).open(t)

	_, err := f.Map2D(context.Background(), 1, 1, Full())
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)
}
