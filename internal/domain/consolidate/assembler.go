// Package consolidate merges roster-aligned assignment tables and the overall
// course totals into one wide table, with labeled section spans for the
// renderer to group and separate visually.
package consolidate

import (
	"fmt"

	"github.com/gradefold/gradefold/internal/domain/assignment"
	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/table"
)

// Section labels a contiguous column span of the consolidated layout.
// Start and End are zero-based inclusive column indices.
type Section struct {
	Label string
	Start int
	End   int
}

// Consolidated is the final denormalized layout: two name columns, one block
// per assignment in input order, then the course-total pair. Row order is
// roster order exactly.
type Consolidated struct {
	CourseName string
	Headers    []string
	Rows       []table.Row
	Sections   []Section
}

// Assemble builds the consolidated layout. Every assignment table must be
// aligned to the given roster; coursePerc and courseLetter must be
// roster-ordered slices of equal length.
func Assemble(assignments []*assignment.Parsed, ros *roster.Roster, coursePerc, courseLetter []table.Cell, courseName string) (*Consolidated, error) {
	n := ros.Len()
	if len(coursePerc) != n || len(courseLetter) != n {
		return nil, fmt.Errorf("course totals cover %d students, roster has %d: %w", len(coursePerc), n, ErrMisaligned)
	}
	for _, a := range assignments {
		if len(a.Table.Rows) != n {
			return nil, fmt.Errorf("assignment %q covers %d students, roster has %d: %w", a.Title, len(a.Table.Rows), n, ErrMisaligned)
		}
	}

	out := &Consolidated{
		CourseName: courseName,
		Headers:    []string{"First name", "Last name"},
		Sections:   []Section{{Label: "Students", Start: 0, End: 1}},
	}

	col := 2
	for _, a := range assignments {
		out.Headers = append(out.Headers, a.WriteColumns...)
		out.Sections = append(out.Sections, Section{
			Label: a.DisplayName,
			Start: col,
			End:   col + len(a.WriteColumns) - 1,
		})
		col += len(a.WriteColumns)
	}

	out.Headers = append(out.Headers, "Course total - 100", "Course total - Letter")
	out.Sections = append(out.Sections, Section{Label: "Course Total", Start: col, End: col + 1})

	for i, key := range ros.Keys() {
		row := make(table.Row, 0, len(out.Headers))
		row = append(row, table.Text(key.First), table.Text(key.Last))
		for _, a := range assignments {
			row = append(row, a.Table.Rows[i][2:]...)
		}
		row = append(row, coursePerc[i], courseLetter[i])
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}
