// Package h5file adapts an HDF5 file to the container.Reader interface.
package h5file

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/scigolib/hdf5"
	"gonum.org/v1/gonum/mat"

	"github.com/GIGAluckman/blsdata/internal/container"
)

// tableColumns is the number of leading cells kept per table row: key and
// value. Further columns (units, comments) are dropped.
const tableColumns = 2

// File is a read-only HDF5 file. The object tree is walked once at open.
type File struct {
	name     string
	file     *hdf5.File
	children map[string][]string
	datasets map[string]*hdf5.Dataset
}

var _ container.Reader = (*File)(nil)

// Open opens an HDF5 file read-only and indexes its groups and datasets.
func Open(name string) (*File, error) {
	f, err := hdf5.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	h := &File{
		name:     name,
		file:     f,
		children: map[string][]string{"": nil},
		datasets: make(map[string]*hdf5.Dataset),
	}

	f.Walk(func(p string, obj hdf5.Object) {
		p = container.Clean(p)
		if p == "" {
			return
		}
		parent := path.Dir(p)
		if parent == "." {
			parent = ""
		}
		h.children[parent] = append(h.children[parent], path.Base(p))

		switch o := obj.(type) {
		case *hdf5.Group:
			if _, ok := h.children[p]; !ok {
				h.children[p] = nil
			}
		case *hdf5.Dataset:
			h.datasets[p] = o
		}
	})

	return h, nil
}

// Children returns the member names of a group in walk order.
func (h *File) Children(group string) ([]string, error) {
	names, ok := h.children[container.Clean(group)]
	if !ok {
		return nil, fmt.Errorf("%s: group %q: %w", h.name, group, container.ErrNotFound)
	}
	return append([]string(nil), names...), nil
}

// Matrix reads a 2D float dataset.
func (h *File) Matrix(p string) (*mat.Dense, error) {
	ds, err := h.dataset(p)
	if err != nil {
		return nil, err
	}

	data, err := ds.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %q: %w", h.name, p, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: dataset %q is empty", h.name, p)
	}

	cols, err := columns(ds)
	if err != nil {
		return nil, fmt.Errorf("%s: dataset %q: %w", h.name, p, err)
	}
	if len(data)%cols != 0 {
		return nil, fmt.Errorf("%s: dataset %q: %d values do not fill %d columns", h.name, p, len(data), cols)
	}

	return mat.NewDense(len(data)/cols, cols, data), nil
}

// Vector reads a 1D float dataset.
func (h *File) Vector(p string) ([]float64, error) {
	ds, err := h.dataset(p)
	if err != nil {
		return nil, err
	}

	data, err := ds.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %q: %w", h.name, p, err)
	}
	return data, nil
}

// Table reads a key/value string table. Fixed-length strings come back
// padded, so cells are trimmed of NULs and surrounding blanks. Only the first
// two cells of each row are kept.
func (h *File) Table(p string) ([][]string, error) {
	ds, err := h.dataset(p)
	if err != nil {
		return nil, err
	}

	cells, err := ds.ReadStrings()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %q: %w", h.name, p, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%s: table %q is empty", h.name, p)
	}

	cols, err := columns(ds)
	if err != nil {
		return nil, fmt.Errorf("%s: table %q: %w", h.name, p, err)
	}
	if cols < tableColumns || len(cells)%cols != 0 {
		return nil, fmt.Errorf("%s: table %q: %d cells in %d columns, want key/value rows", h.name, p, len(cells), cols)
	}

	rows := make([][]string, 0, len(cells)/cols)
	for i := 0; i < len(cells); i += cols {
		row := make([]string, tableColumns)
		for j := range row {
			row[j] = strings.TrimSpace(strings.TrimRight(cells[i+j], "\x00"))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close releases the underlying file.
func (h *File) Close() error {
	return h.file.Close()
}

func (h *File) dataset(p string) (*hdf5.Dataset, error) {
	ds, ok := h.datasets[container.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("%s: dataset %q: %w", h.name, p, container.ErrNotFound)
	}
	return ds, nil
}

// shape2D matches the dataspace part of Dataset.Info, e.g. "2D array [4 x 5]".
var shape2D = regexp.MustCompile(`\b2D array \[(\d+) x (\d+)\]`)

// columns reads the extent of the second dimension of a 2D dataset from its
// header. Failures to read the header are returned as is.
func columns(ds *hdf5.Dataset) (int, error) {
	info, err := ds.Info()
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset header: %w", err)
	}

	m := shape2D.FindStringSubmatch(info)
	if m == nil {
		return 0, fmt.Errorf("not a two-dimensional dataset (%s)", info)
	}
	cols, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("bad column count in %q: %w", info, err)
	}
	if cols == 0 {
		return 0, fmt.Errorf("dataset has no columns")
	}
	return cols, nil
}
