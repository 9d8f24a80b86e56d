package bls

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GIGAluckman/blsdata/internal/container"
	"github.com/GIGAluckman/blsdata/internal/h5file"
)

// File is an open BLS measurement file. It is not safe for concurrent use.
type File struct {
	src      container.Reader
	scans    *scanTable
	labels   map[Tag]string
	selector BandSelector
	log      zerolog.Logger
}

// Option configures a File.
type Option func(*options)

type options struct {
	log          zerolog.Logger
	selector     BandSelector
	currentLabel string
}

// WithLogger sets the logger used for progress messages. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSelector sets the band selector consulted by the Interactive policy.
func WithSelector(s BandSelector) Option {
	return func(o *options) { o.selector = s }
}

// WithCurrentTag sets the marker text of the field sweep current source.
func WithCurrentTag(label string) Option {
	return func(o *options) {
		if label != "" {
			o.currentLabel = label
		}
	}
}

// Open opens the HDF5 file at name read-only.
func Open(name string, opts ...Option) (*File, error) {
	r, err := h5file.Open(name)
	if err != nil {
		return nil, err
	}
	f, err := New(r, opts...)
	if err != nil {
		r.Close()
		return nil, err
	}
	return f, nil
}

// New wraps an already opened container. The scan definition group is
// decoded immediately; the File takes ownership of r.
func New(r container.Reader, opts ...Option) (*File, error) {
	o := options{
		log:          zerolog.Nop(),
		currentLabel: DefaultCurrentLabel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if reserved(o.currentLabel) {
		return nil, fmt.Errorf("current tag %q: %w", o.currentLabel, ErrTagConflict)
	}

	scans, err := decodeScanTable(r, labelIndex(o.currentLabel), o.log)
	if err != nil {
		return nil, err
	}

	labels := make(map[Tag]string, len(tagNames))
	for t, s := range tagNames {
		labels[t] = s
	}
	labels[TagCurrent] = o.currentLabel

	o.log.Debug().Int("entries", len(scans.entries)).Msg("Opened measurement file")
	return &File{
		src:      r,
		scans:    scans,
		labels:   labels,
		selector: o.selector,
		log:      o.log,
	}, nil
}

// Close releases the underlying container.
func (f *File) Close() error {
	return f.src.Close()
}

// Entries returns the decoded scan definitions in file order.
func (f *File) Entries() []*Entry {
	return append([]*Entry(nil), f.scans.entries...)
}
