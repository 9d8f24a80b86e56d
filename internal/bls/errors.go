package bls

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTagNotFound means no scan definition carries the requested tag.
	ErrTagNotFound = errors.New("scan definition tag not found")
	// ErrAmbiguousTag means more than one scan definition carries the tag.
	ErrAmbiguousTag = errors.New("scan definition tag is ambiguous")
	// ErrInvalidField means a scan definition value could not be parsed.
	ErrInvalidField = errors.New("invalid scan definition field")
	// ErrRecordNotFound means the spectrum record is missing.
	ErrRecordNotFound = errors.New("measurement record not found")
	// ErrFrequencyNotFound means a band boundary is not a bin axis sample.
	ErrFrequencyNotFound = errors.New("frequency is not on the bin axis")
	// ErrShape means the sample count does not fit the requested shape.
	ErrShape = errors.New("sample count does not fit shape")
	// ErrSelectionCancelled means the band dialog was closed unconfirmed.
	ErrSelectionCancelled = errors.New("band selection cancelled")
	// ErrUnsupportedPolicy means the policy cannot be applied here.
	ErrUnsupportedPolicy = errors.New("policy not supported")
	// ErrTagConflict means a configured marker text already names another tag.
	ErrTagConflict = errors.New("tag label already in use")
)

// TagError reports a failed tag lookup.
type TagError struct {
	Tag     string
	Entries []string // matching entry ids when the tag is ambiguous
	Err     error
}

func (e *TagError) Error() string {
	if len(e.Entries) > 0 {
		return fmt.Sprintf("tag %q: %v (entries %s)", e.Tag, e.Err, strings.Join(e.Entries, ", "))
	}
	return fmt.Sprintf("tag %q: %v", e.Tag, e.Err)
}

func (e *TagError) Unwrap() error { return e.Err }

// FieldError reports a missing or unparseable scan definition value.
type FieldError struct {
	Entry string
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("scan definition %s: field %q: %v", e.Entry, e.Field, ErrInvalidField)
	}
	return fmt.Sprintf("scan definition %s: field %q = %q: %v", e.Entry, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidField}
	}
	return []error{ErrInvalidField, e.Err}
}

// FrequencyError reports a band boundary with no exactly matching bin.
type FrequencyError struct {
	Frequency float64
	Low       float64
	High      float64
	Bins      int
}

func (e *FrequencyError) Error() string {
	return fmt.Sprintf("%g GHz: %v (%d bins from %g to %g GHz)", e.Frequency, ErrFrequencyNotFound, e.Bins, e.Low, e.High)
}

func (e *FrequencyError) Unwrap() error { return ErrFrequencyNotFound }

// ShapeError reports samples that cannot be arranged into the target shape.
type ShapeError struct {
	Samples int
	Target  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("cannot arrange %d samples as %s: %v", e.Samples, e.Target, ErrShape)
}

func (e *ShapeError) Unwrap() error { return ErrShape }
