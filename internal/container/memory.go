package container

import (
	"fmt"
	"path"

	"gonum.org/v1/gonum/mat"
)

// Memory is an in-memory Reader. Members are listed in insertion order.
type Memory struct {
	children map[string][]string
	matrices map[string]*mat.Dense
	vectors  map[string][]float64
	tables   map[string][][]string
	closed   bool
}

// NewMemory returns an empty in-memory container.
func NewMemory() *Memory {
	return &Memory{
		children: map[string][]string{"": nil},
		matrices: make(map[string]*mat.Dense),
		vectors:  make(map[string][]float64),
		tables:   make(map[string][][]string),
	}
}

// AddMatrix stores a numeric matrix, creating parent groups as needed.
func (m *Memory) AddMatrix(p string, d *mat.Dense) *Memory {
	p = Clean(p)
	m.link(p)
	m.matrices[p] = mat.DenseCopyOf(d)
	return m
}

// AddVector stores a one-dimensional numeric dataset.
func (m *Memory) AddVector(p string, v []float64) *Memory {
	p = Clean(p)
	m.link(p)
	m.vectors[p] = append([]float64(nil), v...)
	return m
}

// AddTable stores a string table.
func (m *Memory) AddTable(p string, rows [][]string) *Memory {
	p = Clean(p)
	m.link(p)
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	m.tables[p] = cp
	return m
}

// link registers p and all of its ancestors as group members.
func (m *Memory) link(p string) {
	for p != "" {
		parent := path.Dir(p)
		if parent == "." {
			parent = ""
		}
		name := path.Base(p)
		if _, ok := m.children[parent]; !ok {
			m.children[parent] = nil
		}
		if !contains(m.children[parent], name) {
			m.children[parent] = append(m.children[parent], name)
		}
		p = parent
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (m *Memory) Children(group string) ([]string, error) {
	if m.closed {
		return nil, errClosed
	}
	names, ok := m.children[Clean(group)]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", group, ErrNotFound)
	}
	return append([]string(nil), names...), nil
}

func (m *Memory) Matrix(p string) (*mat.Dense, error) {
	if m.closed {
		return nil, errClosed
	}
	d, ok := m.matrices[Clean(p)]
	if !ok {
		return nil, fmt.Errorf("matrix %q: %w", p, ErrNotFound)
	}
	return mat.DenseCopyOf(d), nil
}

func (m *Memory) Vector(p string) ([]float64, error) {
	if m.closed {
		return nil, errClosed
	}
	v, ok := m.vectors[Clean(p)]
	if !ok {
		return nil, fmt.Errorf("vector %q: %w", p, ErrNotFound)
	}
	return append([]float64(nil), v...), nil
}

func (m *Memory) Table(p string) ([][]string, error) {
	if m.closed {
		return nil, errClosed
	}
	t, ok := m.tables[Clean(p)]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", p, ErrNotFound)
	}
	return t, nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

var errClosed = fmt.Errorf("container: reader is closed")
