package table

import "fmt"

// FindHeaderRow locates the first row in which any cell case-insensitively
// contains the given marker (typically "First name"). Raw rubric exports
// carry a free-form preamble above the header, so position cannot be assumed.
func FindHeaderRow(t *Table, marker string) (int, error) {
	for i, r := range t.Rows {
		if r.ContainsFold(marker) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no row contains %q: %w", marker, ErrHeaderRowNotFound)
}

// ExcludeContaining builds a row predicate that reports true when any cell
// case-insensitively contains one of the given terms. An empty term list
// yields a predicate that never matches.
func ExcludeContaining(terms ...string) func(Row) bool {
	return func(r Row) bool {
		for _, term := range terms {
			if term != "" && r.ContainsFold(term) {
				return true
			}
		}
		return false
	}
}
