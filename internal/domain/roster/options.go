package roster

import "github.com/gradefold/gradefold/internal/domain/table"

const defaultHeaderMarker = "First name"

// Option applies a configuration option to the roster builder.
type Option func(*builder)

// WithHeaderMarker overrides the cell text used to locate the header row in
// raw assignment exports.
func WithHeaderMarker(marker string) Option {
	return func(b *builder) {
		if marker != "" {
			b.headerMarker = marker
		}
	}
}

// WithExclusion sets the row-exclusion predicate. Rows matching the predicate
// never contribute to the roster.
func WithExclusion(exclude func(table.Row) bool) Option {
	return func(b *builder) {
		if exclude != nil {
			b.exclude = exclude
		}
	}
}
