package table

import "strings"

// Normalize canonicalizes a free-text label for fuzzy comparison: runs of
// whitespace collapse to a single space, the result is trimmed and lowered.
// Total over all inputs, no side effects.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
