package bls

import (
	"errors"
	"fmt"
)

// FindTag returns the id of the scan definition entry carrying tag.
func (f *File) FindTag(tag Tag) (string, error) {
	e, err := f.scans.lookup(tag, f.labels[tag])
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

// ScanStepCount returns the number of steps of scan dimension 1 or 2.
func (f *File) ScanStepCount(dim int) (int, error) {
	tag, err := ScanDimensionTag(dim)
	if err != nil {
		return 0, err
	}
	d, err := f.definition(tag)
	if err != nil {
		return 0, err
	}
	return d.(ScanDimension).Steps, nil
}

// FrequencyBounds returns the RF stimulus sweep.
func (f *File) FrequencyBounds() (Sweep, error) {
	return f.sweepDefinition(TagFrequency)
}

// CurrentBounds returns the field sweep current.
func (f *File) CurrentBounds() (Sweep, error) {
	return f.sweepDefinition(TagCurrent)
}

// RepetitionCount returns the number of sweep repetitions. ok is false when
// the file has no repetition structure, which is not an error. A stored count
// of zero is treated the same way.
func (f *File) RepetitionCount() (count int, ok bool, err error) {
	d, err := f.definition(TagRepetitions)
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	n := d.(Repetitions).Count
	if n == 0 {
		f.log.Warn().Msg("Repetition count is zero, treating sweep as unrepeated")
		return 0, false, nil
	}
	f.log.Info().Int("repetitions", n).Msg("Detected repeated sweep")
	return n, true, nil
}

func (f *File) sweepDefinition(tag Tag) (Sweep, error) {
	d, err := f.definition(tag)
	if err != nil {
		return Sweep{}, err
	}
	return d.(Sweep), nil
}

func (f *File) definition(tag Tag) (Definition, error) {
	e, err := f.scans.lookup(tag, f.labels[tag])
	if err != nil {
		return nil, err
	}
	if e.err != nil {
		return nil, e.err
	}
	if e.def == nil {
		return nil, fmt.Errorf("scan definition %s: no decoder for tag %q", e.ID, f.labels[tag])
	}
	return e.def, nil
}
