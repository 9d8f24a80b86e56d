package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Geometry names an acquisition geometry
type Geometry string

const (
	GeometryRFSweep    Geometry = "rf-sweep"
	GeometryFieldSweep Geometry = "field-sweep"
	GeometryLineScan   Geometry = "line-scan"
	GeometryMap2D      Geometry = "map-2d"
)

// Valid reports whether g is one of the known geometries
func (g Geometry) Valid() bool {
	switch g {
	case GeometryRFSweep, GeometryFieldSweep, GeometryLineScan, GeometryMap2D:
		return true
	}
	return false
}

// Array is a dense n-dimensional array stored in row-major order
type Array struct {
	Shape []int     `json:"shape" doc:"Length of each axis"`
	Data  []float64 `json:"data" doc:"Values in row-major order"`
}

// Len returns the number of elements described by Shape
func (a Array) Len() int {
	if len(a.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// At returns the element at the given index, one coordinate per axis
func (a Array) At(idx ...int) float64 {
	if len(idx) != len(a.Shape) {
		panic("models: index rank does not match array rank")
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.Shape[i] {
			panic("models: index out of range")
		}
		off = off*a.Shape[i] + v
	}
	return a.Data[off]
}

// FreqInfo describes the bin-frequency axis of a result. Bounds is set when a
// band was chosen interactively, Axis when no reduction was applied, and
// neither for an explicit range.
type FreqInfo struct {
	Bounds []float64 `json:"bounds,omitempty" doc:"Selected band [low, high] in GHz"`
	Axis   []float64 `json:"axis,omitempty" doc:"Full bin-frequency axis in GHz"`
}

// SweepResult holds RF or field sweep counts. With repetitions the leading
// axis of Counts is the repetition index.
type SweepResult struct {
	Counts      Array     `json:"counts"`
	Repetitions int       `json:"repetitions,omitempty"`
	Stimulus    []float64 `json:"stimulus"`
	Freq        FreqInfo  `json:"freq"`
}

// LineScanResult holds 1D scan counts and scan positions
type LineScanResult struct {
	Counts   Array     `json:"counts"`
	Position []float64 `json:"position"`
	Freq     FreqInfo  `json:"freq"`
}

// MapResult holds 2D scan counts on a (steps1, steps2) grid
type MapResult struct {
	Counts    Array     `json:"counts"`
	Position1 []float64 `json:"position_1"`
	Position2 []float64 `json:"position_2"`
	Freq      FreqInfo  `json:"freq"`
}
