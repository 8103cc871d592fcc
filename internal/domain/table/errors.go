package table

import "errors"

// Sentinel kinds for table schema discovery. These allow errors.Is from callers.
var (
	// ErrHeaderRowNotFound means the header marker row is absent from a raw
	// export. Structural, so callers must treat it as fatal.
	ErrHeaderRowNotFound = errors.New("header row not found")
)
