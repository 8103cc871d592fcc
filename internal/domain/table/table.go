package table

import "strings"

// Row is one ordered record of cells.
type Row []Cell

// IsEmpty reports whether every cell in the row is missing.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if !c.IsMissing() {
			return false
		}
	}
	return true
}

// ContainsFold reports whether any cell's text rendering contains the given
// substring, case-insensitively. This backs both the header-marker search and
// the row-exclusion predicate.
func (r Row) ContainsFold(substr string) bool {
	needle := strings.ToLower(substr)
	for _, c := range r {
		if strings.Contains(strings.ToLower(c.String()), needle) {
			return true
		}
	}
	return false
}

// Table is an ordered header plus body rows. Headers may repeat; columns are
// addressed by position, with name lookups resolving the first match.
type Table struct {
	Headers []string
	Rows    []Row
}

// ColumnIndex returns the position of the first header whose normalized form
// equals name's normalized form, or -1.
func (t *Table) ColumnIndex(name string) int {
	want := Normalize(name)
	for i, h := range t.Headers {
		if Normalize(h) == want {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), or Missing when the row is ragged.
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Missing()
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return Missing()
	}
	return r[col]
}

// Filter returns a table containing only rows for which keep returns true.
// Headers are shared, rows are not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Headers: t.Headers}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// SelectColumns returns a table with only the columns at the given positions,
// in the given order.
func (t *Table) SelectColumns(indices []int) *Table {
	out := &Table{Headers: make([]string, len(indices))}
	for i, idx := range indices {
		out.Headers[i] = t.Headers[idx]
	}
	for _, r := range t.Rows {
		row := make(Row, len(indices))
		for i, idx := range indices {
			if idx < len(r) {
				row[i] = r[idx]
			} else {
				row[i] = Missing()
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
