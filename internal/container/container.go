// Package container defines the read-only view of a hierarchical measurement
// file that the BLS reader depends on.
//
// Paths are slash separated and relative to the file root, e.g.
// "scan_definition/3" or "measurement/3/data". A leading slash is accepted.
package container

import (
	"errors"
	"path"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrNotFound is returned when a group or dataset does not exist.
var ErrNotFound = errors.New("container: object not found")

// Reader is a read-only hierarchical container such as an HDF5 file.
type Reader interface {
	// Children returns the names of the direct members of a group, in the
	// order the underlying file reports them.
	Children(group string) ([]string, error)

	// Matrix reads a two-dimensional numeric dataset.
	Matrix(path string) (*mat.Dense, error)

	// Vector reads a one-dimensional numeric dataset.
	Vector(path string) ([]float64, error)

	// Table reads a two-dimensional string dataset as rows of cells.
	Table(path string) ([][]string, error)

	Close() error
}

// Clean normalizes a container path: no leading or trailing slash, no
// duplicate separators. The root is "".
func Clean(p string) string {
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// Join builds a container path from its elements.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}
