package bls

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/GIGAluckman/blsdata/pkg/models"
)

func vectorArray(v []float64) models.Array {
	return models.Array{Shape: []int{len(v)}, Data: v}
}

// denseArray copies any matrix, transposed views included, into row-major
// order.
func denseArray(m mat.Matrix) models.Array {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return models.Array{Shape: []int{r, c}, Data: data}
}

// stackRepetitions splits the leading axis of a into reps consecutive blocks
// and stacks them along a new leading axis.
func stackRepetitions(a models.Array, reps int) (models.Array, error) {
	samples := a.Shape[0]
	if reps <= 0 || samples%reps != 0 {
		return models.Array{}, &ShapeError{Samples: samples, Target: fmt.Sprintf("%d repetitions", reps)}
	}
	shape := append([]int{reps, samples / reps}, a.Shape[1:]...)
	return models.Array{Shape: shape, Data: a.Data}, nil
}

// reshapeGrid arranges a flat sample vector as a rows × cols grid.
func reshapeGrid(v []float64, rows, cols int) (models.Array, error) {
	if len(v) != rows*cols {
		return models.Array{}, &ShapeError{Samples: len(v), Target: fmt.Sprintf("%dx%d grid", rows, cols)}
	}
	return models.Array{Shape: []int{rows, cols}, Data: v}, nil
}
