// Package coursetotal resolves grade columns in the wide course-total table.
// Column naming there is loosely structured ("<title> (Percentage)",
// "<title> (Letter)"), so resolution is fuzzy: normalized substring
// containment against the assignment title, with the literal percentage or
// letter marker required. Scan order is column order and the last match wins,
// matching the source export's behavior.
package coursetotal

import (
	"strings"

	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/table"
)

const (
	percentageMarker  = "(percentage)"
	letterMarker      = "(letter)"
	courseTotalMarker = "course total"
)

// Resolver answers column-identity and per-student lookups against a cleaned
// course-total table. It is read-only after construction.
type Resolver struct {
	course *table.Table
	rows   map[roster.StudentKey]int
}

// NewResolver indexes the course table by student key. The table must already
// be cleaned: names trimmed, nameless and excluded rows dropped.
func NewResolver(course *table.Table) *Resolver {
	r := &Resolver{
		course: course,
		rows:   make(map[roster.StudentKey]int, len(course.Rows)),
	}
	firstCol := course.ColumnIndex("First name")
	lastCol := course.ColumnIndex("Last name")
	if firstCol < 0 || lastCol < 0 {
		return r
	}
	for i, row := range course.Rows {
		k := roster.StudentKey{
			First: strings.TrimSpace(row[firstCol].String()),
			Last:  strings.TrimSpace(row[lastCol].String()),
		}
		if k.First == "" || k.Last == "" {
			continue
		}
		if _, dup := r.rows[k]; !dup {
			r.rows[k] = i
		}
	}
	return r
}

// GradeColumns finds the percentage and letter column indices whose names
// contain any of the given title variants (normalized). Either index is -1
// when no column matches; that is a soft condition, not an error.
func (r *Resolver) GradeColumns(variants ...string) (percCol, letterCol int) {
	normalized := make([]string, 0, len(variants))
	for _, v := range variants {
		if n := table.Normalize(v); n != "" {
			normalized = append(normalized, n)
		}
	}
	percCol, letterCol = -1, -1
	for i, header := range r.course.Headers {
		norm := table.Normalize(header)
		matched := false
		for _, v := range normalized {
			if strings.Contains(norm, v) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if strings.Contains(norm, percentageMarker) {
			percCol = i
		}
		if strings.Contains(norm, letterMarker) {
			letterCol = i
		}
	}
	return percCol, letterCol
}

// ExactGradeColumns is the strict alternative to GradeColumns: the column
// name must equal "<stem> (percentage)" or "<stem> (letter)" after
// normalization. Used when an explicit column override is configured for an
// assignment title.
func (r *Resolver) ExactGradeColumns(stem string) (percCol, letterCol int) {
	wantPerc := table.Normalize(stem + " " + percentageMarker)
	wantLetter := table.Normalize(stem + " " + letterMarker)
	percCol, letterCol = -1, -1
	for i, header := range r.course.Headers {
		switch table.Normalize(header) {
		case wantPerc:
			percCol = i
		case wantLetter:
			letterCol = i
		}
	}
	return percCol, letterCol
}

// CourseTotalColumns finds the overall course percentage and letter columns.
func (r *Resolver) CourseTotalColumns() (percCol, letterCol int) {
	percCol, letterCol = -1, -1
	for i, header := range r.course.Headers {
		norm := table.Normalize(header)
		if !strings.Contains(norm, courseTotalMarker) {
			continue
		}
		if strings.Contains(norm, percentageMarker) {
			percCol = i
		}
		if strings.Contains(norm, letterMarker) {
			letterCol = i
		}
	}
	return percCol, letterCol
}

// Lookup returns the cell for a student in the given column, Missing when
// the column is -1 or the student is absent from the course table.
func (r *Resolver) Lookup(key roster.StudentKey, col int) table.Cell {
	if col < 0 {
		return table.Missing()
	}
	row, ok := r.rows[key]
	if !ok {
		return table.Missing()
	}
	return r.course.Cell(row, col)
}

// TotalsFor returns the overall course percentage and letter grade for every
// roster student, in roster order. Percentages pass through ParsePercentage.
func (r *Resolver) TotalsFor(ros *roster.Roster) (perc, letter []table.Cell) {
	percCol, letterCol := r.CourseTotalColumns()
	keys := ros.Keys()
	perc = make([]table.Cell, len(keys))
	letter = make([]table.Cell, len(keys))
	for i, k := range keys {
		perc[i] = ParsePercentage(r.Lookup(k, percCol))
		letter[i] = r.Lookup(k, letterCol)
	}
	return perc, letter
}

// ParsePercentage coerces a percentage cell: a trailing "%" is stripped and
// the remainder parsed as a float. Unparsable values pass through unchanged
// so unexpected text like "Exempt" survives into the output.
func ParsePercentage(c table.Cell) table.Cell {
	if c.IsMissing() {
		return c
	}
	if _, ok := c.Float(); ok {
		return c
	}
	s := strings.TrimSpace(strings.ReplaceAll(c.String(), "%", ""))
	if n := table.FromString(s); !n.IsMissing() {
		if _, ok := n.Float(); ok {
			return n
		}
	}
	return c
}
