// Package roster builds the canonical student list that every downstream
// join aligns against. Identity is the trimmed (first, last) name pair; the
// list is deduplicated and insertion-ordered so the consolidated layout is
// reproducible across runs.
package roster

import (
	"fmt"
	"strings"

	"github.com/gradefold/gradefold/internal/domain/table"
)

// StudentKey identifies one student across all sources.
type StudentKey struct {
	First string
	Last  string
}

// Roster is an ordered, deduplicated sequence of student keys. It is
// immutable once built and safe for concurrent reads.
type Roster struct {
	keys  []StudentKey
	index map[StudentKey]int
}

// Len returns the number of students.
func (r *Roster) Len() int {
	return len(r.keys)
}

// Keys returns the students in first-seen order. The returned slice must not
// be mutated.
func (r *Roster) Keys() []StudentKey {
	return r.keys
}

// Index returns the position of a key and whether it is present.
func (r *Roster) Index(k StudentKey) (int, bool) {
	i, ok := r.index[k]
	return i, ok
}

// builder accumulates keys with at-most-once insertion, in the manner of an
// idempotency cache: a key already recorded is silently skipped.
type builder struct {
	roster       Roster
	headerMarker string
	exclude      func(table.Row) bool
}

func (b *builder) add(first, last string) {
	k := StudentKey{First: strings.TrimSpace(first), Last: strings.TrimSpace(last)}
	if k.First == "" || k.Last == "" {
		return
	}
	if _, seen := b.roster.index[k]; seen {
		return
	}
	b.roster.index[k] = len(b.roster.keys)
	b.roster.keys = append(b.roster.keys, k)
}

// Build unions student identities from the cleaned course-total table and the
// raw assignment tables, in that order. Course rows come first in row order;
// each assignment then contributes its not-yet-seen names in appearance
// order. Assignment tables are raw exports, so the header row is located by
// marker and name cells are read positionally from the first two columns.
func Build(course *table.Table, assignments []*table.Table, opts ...Option) (*Roster, error) {
	b := &builder{
		roster:       Roster{index: make(map[StudentKey]int)},
		headerMarker: defaultHeaderMarker,
		exclude:      func(table.Row) bool { return false },
	}
	for _, opt := range opts {
		opt(b)
	}

	firstCol := course.ColumnIndex("First name")
	lastCol := course.ColumnIndex("Last name")
	for _, row := range course.Rows {
		if firstCol < 0 || lastCol < 0 {
			break
		}
		if firstCol < len(row) && lastCol < len(row) {
			b.add(row[firstCol].String(), row[lastCol].String())
		}
	}

	for i, raw := range assignments {
		headerRow, err := table.FindHeaderRow(raw, b.headerMarker)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i, err)
		}
		for _, row := range raw.Rows[headerRow+1:] {
			if row.IsEmpty() || b.exclude(row) {
				continue
			}
			first := ""
			last := ""
			if len(row) > 0 {
				first = row[0].String()
			}
			if len(row) > 1 {
				last = row[1].String()
			}
			b.add(first, last)
		}
	}

	return &b.roster, nil
}
