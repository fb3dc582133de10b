package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics of a lint run
type Metrics struct {
	registry *prometheus.Registry

	// Input metrics
	FilesLintedTotal *prometheus.CounterVec
	ParseErrorsTotal *prometheus.CounterVec

	// Index metrics
	IndexBuildDuration prometheus.Histogram
	LocalesTotal       prometheus.Gauge

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Result metrics
	ViolationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics. A nil registry
// gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		FilesLintedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "i18nlint_files_linted_total",
				Help: "Total number of files processed",
			},
			[]string{"kind"},
		),
		ParseErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "i18nlint_parse_errors_total",
				Help: "Total number of catalog sources that failed to parse",
			},
			[]string{"format"},
		),

		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "i18nlint_index_build_seconds",
				Help:    "Time spent loading catalogs and building the locale index",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		LocalesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "i18nlint_locales_total",
				Help: "Number of locales in the index",
			},
		),

		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "i18nlint_cache_hits_total",
				Help: "Total number of parsed source cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "i18nlint_cache_misses_total",
				Help: "Total number of parsed source cache misses",
			},
		),

		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "i18nlint_violations_total",
				Help: "Total number of reported violations",
			},
			[]string{"rule", "severity"},
		),
	}

	registry.MustRegister(
		m.FilesLintedTotal,
		m.ParseErrorsTotal,
		m.IndexBuildDuration,
		m.LocalesTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ViolationsTotal,
	)

	return m
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// The Record helpers accept a nil receiver so callers can run without
// metrics.

// RecordFile counts one processed file of the given kind
func (m *Metrics) RecordFile(kind string) {
	if m == nil {
		return
	}
	m.FilesLintedTotal.WithLabelValues(kind).Inc()
}

// RecordParseError counts one source that failed to parse
func (m *Metrics) RecordParseError(format string) {
	if m == nil {
		return
	}
	m.ParseErrorsTotal.WithLabelValues(format).Inc()
}

// RecordIndexBuild observes the duration since start
func (m *Metrics) RecordIndexBuild(start time.Time, locales int) {
	if m == nil {
		return
	}
	m.IndexBuildDuration.Observe(time.Since(start).Seconds())
	m.LocalesTotal.Set(float64(locales))
}

// RecordCache counts a cache lookup
func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.Inc()
	} else {
		m.CacheMissesTotal.Inc()
	}
}

// RecordViolation counts one reported violation
func (m *Metrics) RecordViolation(rule, severity string) {
	if m == nil {
		return
	}
	m.ViolationsTotal.WithLabelValues(rule, severity).Inc()
}

// WriteTextfile writes the metrics in the text exposition format, for
// collection by node_exporter's textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
