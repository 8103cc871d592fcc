// Package metrics provides Prometheus instrumentation for the consolidation
// pipeline. The process is batch-shaped, so instead of serving a scrape
// endpoint the registry is gathered at end of run and logged as a summary.
package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Manager manages all Prometheus metrics for a consolidation run.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	// Pipeline progress
	assignmentsParsed prometheus.Counter
	assignmentsFailed prometheus.Counter
	parseDuration     prometheus.Histogram

	// Output shape
	rosterSize    prometheus.Gauge
	outputColumns prometheus.Gauge

	// Optional enhancements
	pdfExported prometheus.Counter
	pdfSkipped  prometheus.Counter
}

// Global metrics manager instance.
var globalManager = NewManager() //nolint:gochecknoglobals // intentional global for singleton metrics manager

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "gradefold",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: m.namespace, Name: name, Help: help})
		m.registry.MustRegister(c)
		return c
	}
	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: m.namespace, Name: name, Help: help})
		m.registry.MustRegister(g)
		return g
	}

	m.assignmentsParsed = factory("assignments_parsed_total", "Assignment exports parsed successfully.")
	m.assignmentsFailed = factory("assignments_failed_total", "Assignment exports that failed structural parsing.")
	m.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "assignment_parse_seconds",
		Help:      "Wall time to parse one assignment export.",
		Buckets:   prometheus.DefBuckets,
	})
	m.registry.MustRegister(m.parseDuration)
	m.rosterSize = gauge("roster_size", "Unique students across all sources.")
	m.outputColumns = gauge("output_columns", "Columns in the consolidated layout.")
	m.pdfExported = factory("pdf_exported_total", "Successful PDF renderings.")
	m.pdfSkipped = factory("pdf_skipped_total", "PDF renderings skipped or failed.")

	return m
}

// Package-level recording helpers against the global manager.

func RecordAssignmentParsed()              { globalManager.assignmentsParsed.Inc() }
func RecordAssignmentFailed()              { globalManager.assignmentsFailed.Inc() }
func ObserveParseDuration(seconds float64) { globalManager.parseDuration.Observe(seconds) }
func UpdateRosterSize(n int)               { globalManager.rosterSize.Set(float64(n)) }
func UpdateOutputColumns(n int)            { globalManager.outputColumns.Set(float64(n)) }
func RecordPDFExported()                   { globalManager.pdfExported.Inc() }
func RecordPDFSkipped()                    { globalManager.pdfSkipped.Inc() }

// Summary gathers the global registry into name -> value pairs, sorted by
// name. Histograms report their sample count.
func Summary() (map[string]float64, error) {
	return globalManager.Summary()
}

// Summary gathers this manager's registry.
func (m *Manager) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}
	out := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			out[mf.GetName()] = metricValue(mf.GetType(), metric)
		}
	}
	return out, nil
}

// SummaryKeys returns the sorted metric names of a summary, for stable logs.
func SummaryKeys(summary map[string]float64) []string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return 0
	}
}
