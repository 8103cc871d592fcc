// Package service orchestrates the consolidation pipeline: discover input
// workbooks, build the shared student roster, parse every assignment in
// parallel, assemble one wide table, and write the formatted output.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gradefold/gradefold/internal/adapters/export"
	"github.com/gradefold/gradefold/internal/adapters/spreadsheet"
	"github.com/gradefold/gradefold/internal/domain/consolidate"
	"github.com/gradefold/gradefold/internal/domain/coursetotal"
	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/table"
	"github.com/gradefold/gradefold/pkg/logger"
	"github.com/gradefold/gradefold/pkg/metrics"
)

const fallbackCourseName = "Course"

// Service runs the consolidation pipeline end to end.
type Service struct {
	inputDir        string
	output          string
	sheetName       string
	headerMarker    string
	exclusionTerms  []string
	workerCount     int
	pdfExport       bool
	strictMatching  bool
	columnOverrides map[string]string

	exporter *export.PDFExporter
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInputDir sets the directory scanned for input workbooks.
func WithInputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.inputDir = dir
		}
	}
}

// WithOutput sets the consolidated workbook path.
func WithOutput(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.output = path
		}
	}
}

// WithSheetName sets the output worksheet name.
func WithSheetName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.sheetName = name
		}
	}
}

// WithHeaderMarker sets the text that identifies the real header row inside
// each export.
func WithHeaderMarker(marker string) Option {
	return func(s *Service) {
		if marker != "" {
			s.headerMarker = marker
		}
	}
}

// WithExclusionTerms sets the substrings that cause a student row to be
// dropped everywhere.
func WithExclusionTerms(terms []string) Option {
	return func(s *Service) {
		s.exclusionTerms = terms
	}
}

// WithWorkerCount sets the number of parallel assignment parsers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithPDFExport toggles the best-effort PDF conversion of the output.
func WithPDFExport(enabled bool) Option {
	return func(s *Service) {
		s.pdfExport = enabled
	}
}

// WithStrictMatching requires exact course-column matches for every
// assignment instead of fuzzy title containment.
func WithStrictMatching(enabled bool) Option {
	return func(s *Service) {
		s.strictMatching = enabled
	}
}

// WithColumnOverrides maps assignment file stems to explicit course-table
// column stems, bypassing fuzzy grade-column matching.
func WithColumnOverrides(overrides map[string]string) Option {
	return func(s *Service) {
		s.columnOverrides = overrides
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExporter sets a custom PDF exporter, mainly for tests.
func WithExporter(e *export.PDFExporter) Option {
	return func(s *Service) {
		if e != nil {
			s.exporter = e
		}
	}
}

// New creates a Service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		inputDir:     ".",
		output:       "consolidated.xlsx",
		sheetName:    "Consolidated",
		headerMarker: "First name",
		workerCount:  runtime.NumCPU(),
		pdfExport:    true,
		logger:       logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exporter == nil {
		s.exporter = export.NewPDFExporter()
	}
	return s
}

// Run executes the full pipeline once. It returns the first fatal error;
// per-cell irregularities and PDF conversion failures never abort the run.
func (s *Service) Run(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()
	s.logger.Info(ctx, "consolidation started",
		logger.String("run_id", runID),
		logger.String("input_dir", s.inputDir),
		logger.String("output", s.output))

	inputs, err := discoverInputs(s.inputDir)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "inputs discovered",
		logger.String("run_id", runID),
		logger.String("course", inputs.coursePath),
		logger.Int("assignments", len(inputs.assignmentPaths)))

	course, err := s.loadCourseTable(inputs.coursePath)
	if err != nil {
		return err
	}

	jobs := make([]parseJob, 0, len(inputs.assignmentPaths))
	rawTables := make([]*table.Table, 0, len(inputs.assignmentPaths))
	for i, path := range inputs.assignmentPaths {
		raw, err := spreadsheet.ReadRaw(path)
		if err != nil {
			return fmt.Errorf("reading assignment %q: %w", path, err)
		}
		jobs = append(jobs, parseJob{index: i, path: path, raw: raw})
		rawTables = append(rawTables, raw)
	}

	ros, err := roster.Build(course, rawTables,
		roster.WithHeaderMarker(s.headerMarker),
		roster.WithExclusion(table.ExcludeContaining(s.exclusionTerms...)))
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}
	metrics.UpdateRosterSize(ros.Len())
	s.logger.Info(ctx, "roster built",
		logger.String("run_id", runID),
		logger.Int("students", ros.Len()))

	resolver := coursetotal.NewResolver(course)
	assignments, err := s.parseAll(ctx, jobs, resolver, ros)
	if err != nil {
		return err
	}

	coursePerc, courseLetter := resolver.TotalsFor(ros)
	consolidated, err := consolidate.Assemble(assignments, ros, coursePerc, courseLetter, courseName(rawTables))
	if err != nil {
		return fmt.Errorf("assembling output: %w", err)
	}
	metrics.UpdateOutputColumns(len(consolidated.Headers))

	if err := spreadsheet.Write(consolidated, s.output, spreadsheet.WithSheetName(s.sheetName)); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	s.logger.Info(ctx, "workbook written",
		logger.String("run_id", runID),
		logger.String("path", s.output),
		logger.Int("columns", len(consolidated.Headers)),
		logger.Int("rows", ros.Len()))

	s.exportPDF(ctx, runID)

	if summary, err := metrics.Summary(); err == nil {
		fields := []logger.Field{
			logger.String("run_id", runID),
			logger.Duration("elapsed", time.Since(start)),
		}
		for _, key := range metrics.SummaryKeys(summary) {
			fields = append(fields, logger.Float64(key, summary[key]))
		}
		s.logger.Info(ctx, "run summary", fields...)
	}
	return nil
}

// loadCourseTable reads the course-total workbook and drops rows without a
// first name as well as excluded students. The header row of the course file
// is its first row.
func (s *Service) loadCourseTable(path string) (*table.Table, error) {
	raw, err := spreadsheet.ReadWithHeader(path)
	if err != nil {
		return nil, fmt.Errorf("reading course file %q: %w", path, err)
	}

	firstIdx := raw.ColumnIndex("First name")
	lastIdx := raw.ColumnIndex("Last name")
	if firstIdx < 0 || lastIdx < 0 {
		return nil, fmt.Errorf("course file %q: name columns missing: %w", path, table.ErrHeaderRowNotFound)
	}

	exclude := table.ExcludeContaining(s.exclusionTerms...)
	cleaned := &table.Table{Headers: raw.Headers}
	for _, row := range raw.Rows {
		if firstIdx >= len(row) || strings.TrimSpace(row[firstIdx].String()) == "" {
			continue
		}
		if exclude(row) {
			continue
		}
		cleaned.Rows = append(cleaned.Rows, row)
	}
	return cleaned, nil
}

// exportPDF converts the written workbook next to itself, logging and
// counting skips instead of failing the run.
func (s *Service) exportPDF(ctx context.Context, runID string) {
	if !s.pdfExport {
		return
	}
	if !s.exporter.Available() {
		s.logger.Warn(ctx, "pdf export skipped: no converter on PATH",
			logger.String("run_id", runID))
		metrics.RecordPDFSkipped()
		return
	}

	pdfPath := strings.TrimSuffix(s.output, ".xlsx") + ".pdf"
	if err := s.exporter.Export(ctx, s.output, pdfPath); err != nil {
		s.logger.Warn(ctx, "pdf export failed",
			logger.String("run_id", runID),
			logger.Error(err))
		metrics.RecordPDFSkipped()
		return
	}
	metrics.RecordPDFExported()
	s.logger.Info(ctx, "pdf exported",
		logger.String("run_id", runID),
		logger.String("path", pdfPath))
}

// courseName pulls the display name of the course from the first cell of the
// first assignment export.
func courseName(rawTables []*table.Table) string {
	for _, t := range rawTables {
		if name := strings.TrimSpace(t.Cell(0, 0).String()); name != "" {
			return name
		}
	}
	return fallbackCourseName
}
