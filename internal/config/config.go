// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration for a consolidation run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputDir holds the grading exports.
	InputDir string `koanf:"input_dir"`

	// Output is the path of the consolidated workbook.
	Output string `koanf:"output"`

	// SheetName names the sheet in the consolidated workbook.
	SheetName string `koanf:"sheet_name"`

	// HeaderMarker is the cell text that identifies the header row in raw
	// assignment exports.
	HeaderMarker string `koanf:"header_marker"`

	// ExclusionTerms drop any row whose cells contain one of these
	// substrings, case-insensitively. A policy knob, not infrastructure.
	ExclusionTerms []string `koanf:"exclusion_terms"`

	// WorkerCount bounds concurrent assignment parsing.
	WorkerCount int `koanf:"worker_count"`

	// PDFExport toggles the best-effort PDF rendering of the workbook.
	PDFExport bool `koanf:"pdf_export"`

	// StrictMatching requires course-total columns to match assignment
	// display names exactly instead of by substring containment.
	StrictMatching bool `koanf:"strict_matching"`

	// ColumnOverrides maps an assignment file name (without extension) to
	// the exact course-total column stem to use instead of fuzzy title
	// matching.
	ColumnOverrides map[string]string `koanf:"column_overrides"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		InputDir:       ".",
		Output:         "consolidated.xlsx",
		SheetName:      "Consolidated",
		HeaderMarker:   "First name",
		ExclusionTerms: []string{"Raffi"},
		WorkerCount:    runtime.NumCPU(),
		PDFExport:      true,
	}
}
