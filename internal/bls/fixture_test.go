package bls

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/GIGAluckman/blsdata/internal/container"
)

// fixture builds an in-memory measurement file laid out like the ones the
// instrument writes: arbitrary entry ids, tag in cell [1,1].
type fixture struct {
	mem  *container.Memory
	next int
}

func newFixture() *fixture {
	return &fixture{mem: container.NewMemory()}
}

func (fx *fixture) scan(label string, fields ...[2]string) string {
	id := fmt.Sprintf("%03d", 100+fx.next*7)
	fx.next++

	rows := [][]string{{"parameter", "value"}, {"name", label}}
	for _, kv := range fields {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	fx.mem.AddTable(container.Join(scanDefinitionGroup, id), rows)
	return id
}

func (fx *fixture) spectrum(data *mat.Dense, origin, increment float64) string {
	id := fx.scan("Acquire spectrum")
	fx.mem.AddMatrix(container.Join(measurementGroup, id, "data"), data)
	fx.mem.AddVector(container.Join(measurementGroup, id, "scale"), []float64{origin, increment})
	return id
}

func (fx *fixture) steps(label string, n int) string {
	return fx.scan(label, [2]string{"steps", fmt.Sprint(n)})
}

func (fx *fixture) sweep(label string, start, stop float64, n int) string {
	return fx.scan(label,
		[2]string{"start", fmt.Sprint(start)},
		[2]string{"stop", fmt.Sprint(stop)},
		[2]string{"steps", fmt.Sprint(n)},
	)
}

func (fx *fixture) repetitions(n int) string {
	return fx.scan("internal - repetitions", [2]string{"repetitions", fmt.Sprint(n)})
}

func (fx *fixture) open(t *testing.T, opts ...Option) *File {
	t.Helper()
	f, err := New(fx.mem, opts...)
	require.NoError(t, err)
	return f
}

// ramp returns a rows × cols matrix with element (i, j) = i*cols + j.
func ramp(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i)
	}
	return mat.NewDense(rows, cols, data)
}

// stubSelector returns a fixed band, or err when set.
type stubSelector struct {
	band      Band
	err       error
	intensity []float64
	axis      []float64
	calls     int
}

func (s *stubSelector) SelectRange(_ context.Context, intensity, axis []float64) (Band, error) {
	s.calls++
	s.intensity = intensity
	s.axis = axis
	return s.band, s.err
}
