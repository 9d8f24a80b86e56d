package bls

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GIGAluckman/blsdata/internal/container"
)

const (
	scanDefinitionGroup = "scan_definition"
	measurementGroup    = "measurement"
)

// Entry is one decoded scan definition.
type Entry struct {
	ID     string
	Label  string // text of the marker cell
	Tag    Tag
	Fields Fields

	def Definition
	err error
}

// Definition returns the decoded content of the entry, or the error met
// while decoding it.
func (e *Entry) Definition() (Definition, error) {
	return e.def, e.err
}

// scanTable is the scan definition group decoded once per open file.
type scanTable struct {
	entries []*Entry
	byTag   map[Tag][]*Entry
}

func decodeScanTable(r container.Reader, labels map[string]Tag, log zerolog.Logger) (*scanTable, error) {
	ids, err := r.Children(scanDefinitionGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan definitions: %w", err)
	}

	st := &scanTable{byTag: make(map[Tag][]*Entry)}
	for _, id := range ids {
		rows, err := r.Table(container.Join(scanDefinitionGroup, id))
		if err != nil {
			return nil, fmt.Errorf("failed to read scan definition %s: %w", id, err)
		}

		e := &Entry{ID: id, Fields: make(Fields, 0, len(rows))}
		for _, row := range rows {
			var kv [2]string
			copy(kv[:], row)
			e.Fields = append(e.Fields, kv)
		}
		if len(rows) > 1 && len(rows[1]) > 1 {
			e.Label = rows[1][1]
		}
		e.Tag = labels[e.Label]

		if p, ok := parsers[e.Tag]; ok {
			e.def, e.err = p(id, e.Fields)
		}

		log.Debug().Str("entry", id).Str("label", e.Label).Stringer("tag", e.Tag).Msg("Decoded scan definition")
		st.entries = append(st.entries, e)
		st.byTag[e.Tag] = append(st.byTag[e.Tag], e)
	}

	return st, nil
}

// lookup returns the single entry carrying tag.
func (st *scanTable) lookup(tag Tag, label string) (*Entry, error) {
	matches := st.byTag[tag]
	switch len(matches) {
	case 0:
		return nil, &TagError{Tag: label, Err: ErrTagNotFound}
	case 1:
		return matches[0], nil
	}

	ids := make([]string, len(matches))
	for i, e := range matches {
		ids[i] = e.ID
	}
	return nil, &TagError{Tag: label, Entries: ids, Err: ErrAmbiguousTag}
}
