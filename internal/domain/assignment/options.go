package assignment

import "github.com/gradefold/gradefold/internal/domain/table"

const defaultHeaderMarker = "First name"

// Option applies a configuration option to a parse run.
type Option func(*parser)

// WithHeaderMarker overrides the cell text used to locate the header row.
func WithHeaderMarker(marker string) Option {
	return func(p *parser) {
		if marker != "" {
			p.headerMarker = marker
		}
	}
}

// WithExclusion sets the row-exclusion predicate applied to data rows.
func WithExclusion(exclude func(table.Row) bool) Option {
	return func(p *parser) {
		if exclude != nil {
			p.exclude = exclude
		}
	}
}

// WithCriterionLabels supplies resolved criterion names, consumed left to
// right as "Definition" columns are renamed. Columns beyond the supplied
// labels fall back to synthetic "Criterion N" names.
func WithCriterionLabels(labels []string) Option {
	return func(p *parser) {
		p.labels = labels
	}
}

// WithStrictMatching replaces fuzzy course-column resolution with exact
// normalized matching on the assignment display name.
func WithStrictMatching() Option {
	return func(p *parser) {
		p.strict = true
	}
}

// WithLabelResolver supplies criterion names lazily: the resolver is invoked
// once with the number of criterion columns discovered in the export. It
// takes precedence over WithCriterionLabels and may return fewer labels than
// asked for, or nil.
func WithLabelResolver(resolve func(expected int) []string) Option {
	return func(p *parser) {
		p.labelsFor = resolve
	}
}

// WithColumnOverride forces course-total column resolution to match the given
// stem exactly instead of fuzzy title containment.
func WithColumnOverride(stem string) Option {
	return func(p *parser) {
		p.overrideStem = stem
	}
}
