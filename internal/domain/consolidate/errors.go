package consolidate

import "errors"

// Sentinel kinds for assembly errors.
var (
	// ErrMisaligned means an input table does not cover the roster row for
	// row; by construction this indicates a programming error upstream.
	ErrMisaligned = errors.New("input not aligned to roster")
)
