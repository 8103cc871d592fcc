package export

import "errors"

// Sentinel kinds for export errors.
var (
	// ErrConverterNotFound means no office-suite binary is on PATH. Callers
	// treat this as a skipped enhancement, never a run failure.
	ErrConverterNotFound = errors.New("document converter not found")
)
