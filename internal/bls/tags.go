package bls

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag identifies the role of a scan definition entry.
type Tag int

const (
	TagUnknown Tag = iota
	TagAcquireSpectrum
	TagFrequency
	TagScanDimension1
	TagScanDimension2
	TagRepetitions
	TagCurrent
)

// DefaultCurrentLabel is the marker text assumed for the field sweep current
// source unless WithCurrentTag says otherwise.
const DefaultCurrentLabel = "Current (A)"

var tagNames = map[Tag]string{
	TagUnknown:         "unknown",
	TagAcquireSpectrum: "Acquire spectrum",
	TagFrequency:       "Frequency (GHz)",
	TagScanDimension1:  "ScanDimension_1",
	TagScanDimension2:  "ScanDimension_2",
	TagRepetitions:     "internal - repetitions",
	TagCurrent:         DefaultCurrentLabel,
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// ScanDimensionTag returns the tag of scan dimension 1 or 2.
func ScanDimensionTag(dim int) (Tag, error) {
	switch dim {
	case 1:
		return TagScanDimension1, nil
	case 2:
		return TagScanDimension2, nil
	}
	return TagUnknown, fmt.Errorf("scan dimension %d: only 1 and 2 exist", dim)
}

// labelIndex maps marker cell text to tags.
// reserved reports whether label is the fixed marker text of another tag.
func reserved(label string) bool {
	for t, s := range tagNames {
		if t != TagUnknown && t != TagCurrent && s == label {
			return true
		}
	}
	return false
}

func labelIndex(currentLabel string) map[string]Tag {
	idx := make(map[string]Tag, len(tagNames))
	for t, s := range tagNames {
		if t == TagUnknown || t == TagCurrent {
			continue
		}
		idx[s] = t
	}
	idx[currentLabel] = TagCurrent
	return idx
}

// Fields are the key/value rows of a scan definition, in file order.
type Fields [][2]string

// Lookup returns the value of the first row whose key is key.
func (f Fields) Lookup(key string) (string, bool) {
	for _, kv := range f {
		if kv[0] == key {
			return kv[1], true
		}
	}
	return "", false
}

// Definition is the decoded content of a scan definition entry.
type Definition interface {
	definition()
}

// Spectrum marks the entry whose measurement record holds the spectra.
type Spectrum struct{}

// Sweep is a linearly stepped stimulus: RF frequency or coil current.
type Sweep struct {
	Start float64
	Stop  float64
	Steps int
}

// ScanDimension is one spatial scan axis.
type ScanDimension struct {
	Steps int
}

// Repetitions is the number of times a sweep was repeated.
type Repetitions struct {
	Count int
}

func (Spectrum) definition()      {}
func (Sweep) definition()         {}
func (ScanDimension) definition() {}
func (Repetitions) definition()   {}

type parser func(entry string, f Fields) (Definition, error)

var parsers = map[Tag]parser{
	TagAcquireSpectrum: func(string, Fields) (Definition, error) { return Spectrum{}, nil },
	TagFrequency:       parseSweep,
	TagCurrent:         parseSweep,
	TagScanDimension1:  parseScanDimension,
	TagScanDimension2:  parseScanDimension,
	TagRepetitions:     parseRepetitions,
}

func parseSweep(entry string, f Fields) (Definition, error) {
	var s Sweep
	var err error
	if s.Start, err = floatField(entry, f, "start"); err != nil {
		return nil, err
	}
	if s.Stop, err = floatField(entry, f, "stop"); err != nil {
		return nil, err
	}
	if s.Steps, err = intField(entry, f, "steps"); err != nil {
		return nil, err
	}
	if s.Steps < 0 {
		return nil, &FieldError{Entry: entry, Field: "steps", Value: strconv.Itoa(s.Steps), Err: fmt.Errorf("negative step count")}
	}
	return s, nil
}

func parseScanDimension(entry string, f Fields) (Definition, error) {
	steps, err := intField(entry, f, "steps")
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, &FieldError{Entry: entry, Field: "steps", Value: strconv.Itoa(steps), Err: fmt.Errorf("negative step count")}
	}
	return ScanDimension{Steps: steps}, nil
}

func parseRepetitions(entry string, f Fields) (Definition, error) {
	n, err := intField(entry, f, "repetitions")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &FieldError{Entry: entry, Field: "repetitions", Value: strconv.Itoa(n), Err: fmt.Errorf("negative repetition count")}
	}
	return Repetitions{Count: n}, nil
}

func floatField(entry string, f Fields, key string) (float64, error) {
	raw, ok := f.Lookup(key)
	if !ok {
		return 0, &FieldError{Entry: entry, Field: key}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &FieldError{Entry: entry, Field: key, Value: raw, Err: err}
	}
	return v, nil
}

func intField(entry string, f Fields, key string) (int, error) {
	raw, ok := f.Lookup(key)
	if !ok {
		return 0, &FieldError{Entry: entry, Field: key}
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FieldError{Entry: entry, Field: key, Value: raw, Err: err}
	}
	return v, nil
}
