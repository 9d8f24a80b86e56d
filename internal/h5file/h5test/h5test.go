// Package h5test writes small HDF5 files for tests.
package h5test

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/scigolib/hdf5"
	"gonum.org/v1/gonum/mat"
)

// StringSize is the fixed width of every table cell written.
const StringSize = 32

// Fixture describes the datasets of a file, keyed by slash-separated path.
// Parent groups are created as needed.
type Fixture struct {
	Tables   map[string][][]string
	Matrices map[string]*mat.Dense
	Vectors  map[string][]float64
}

// Write creates the file at name, replacing any existing one.
func (f Fixture) Write(name string) (err error) {
	fw, err := hdf5.CreateForWrite(name, hdf5.CreateTruncate)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	for _, g := range f.groups() {
		if _, err := fw.CreateGroup(g); err != nil {
			return fmt.Errorf("failed to create group %s: %w", g, err)
		}
	}

	for p, rows := range f.Tables {
		width := 0
		for _, row := range rows {
			width = max(width, len(row))
		}
		cells := make([]string, 0, len(rows)*width)
		for _, row := range rows {
			cells = append(cells, row...)
			for range width - len(row) {
				cells = append(cells, "")
			}
		}
		dims := []uint64{uint64(len(rows)), uint64(width)}
		if err := write(fw, p, hdf5.String, dims, cells, hdf5.WithStringSize(StringSize)); err != nil {
			return err
		}
	}

	for p, m := range f.Matrices {
		r, c := m.Dims()
		data := make([]float64, 0, r*c)
		for i := range r {
			data = append(data, mat.Row(nil, i, m)...)
		}
		if err := write(fw, p, hdf5.Float64, []uint64{uint64(r), uint64(c)}, data); err != nil {
			return err
		}
	}

	for p, v := range f.Vectors {
		if err := write(fw, p, hdf5.Float64, []uint64{uint64(len(v))}, v); err != nil {
			return err
		}
	}

	return nil
}

func write(fw *hdf5.FileWriter, p string, dtype hdf5.Datatype, dims []uint64, data interface{}, opts ...hdf5.DatasetOption) error {
	ds, err := fw.CreateDataset(abs(p), dtype, dims, opts...)
	if err != nil {
		return fmt.Errorf("failed to create dataset %s: %w", p, err)
	}
	if err := ds.Write(data); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", p, err)
	}
	return nil
}

// groups lists every ancestor group of the datasets, parents first.
func (f Fixture) groups() []string {
	seen := make(map[string]bool)
	add := func(p string) {
		for dir := path.Dir(abs(p)); dir != "/"; dir = path.Dir(dir) {
			seen[dir] = true
		}
	}
	for p := range f.Tables {
		add(p)
	}
	for p := range f.Matrices {
		add(p)
	}
	for p := range f.Vectors {
		add(p)
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := strings.Count(out[i], "/"), strings.Count(out[j], "/")
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}

func abs(p string) string {
	return "/" + strings.Trim(p, "/")
}

// LineScan returns a line scan file laid out the way the instrument writes
// it: entry 003 is a four-step ScanDimension_1 with a unit column, and entry
// 017 is the spectrum, a 4×5 matrix with element (i, j) = 5i + j over bins
// 1.0, 1.5, ..., 3.0 GHz.
func LineScan() Fixture {
	data := make([]float64, 20)
	for i := range data {
		data[i] = float64(i)
	}
	return Fixture{
		Tables: map[string][][]string{
			"scan_definition/003": {
				{"parameter", "value", "unit"},
				{"name", "ScanDimension_1"},
				{"steps", "4", "points"},
			},
			"scan_definition/017": {
				{"parameter", "value"},
				{"name", "Acquire spectrum"},
				{"steps ", " 4"},
			},
		},
		Matrices: map[string]*mat.Dense{
			"measurement/017/data": mat.NewDense(4, 5, data),
		},
		Vectors: map[string][]float64{
			"measurement/017/scale": {1.0, 0.5},
		},
	}
}
