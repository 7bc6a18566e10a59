package core

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	FilesLintedMetricName     = "namelint_files_linted_total"
	DiagnosticsMetricName     = "namelint_diagnostics_total"
	FileErrorsMetricName      = "namelint_file_errors_total"
	LintDurationMetricName    = "namelint_file_lint_duration_seconds"
	LastRunDurationMetricName = "namelint_last_run_duration_seconds"
)

// Metrics holds the lint counters. Each Metrics owns its registry so
// separate runs (and tests) do not share state.
type Metrics struct {
	Registry *prometheus.Registry

	filesLinted     *prometheus.CounterVec
	diagnostics     *prometheus.CounterVec
	fileErrors      prometheus.Counter
	lintDuration    *prometheus.HistogramVec
	lastRunDuration prometheus.Gauge
}

// NewMetrics creates and registers the lint metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		filesLinted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FilesLintedMetricName,
			Help: "Number of files linted, by language",
		}, []string{"language"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DiagnosticsMetricName,
			Help: "Number of naming diagnostics, by selector and message id",
		}, []string{"selector", "message_id"}),
		fileErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: FileErrorsMetricName,
			Help: "Number of files that could not be read or parsed",
		}),
		lintDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    LintDurationMetricName,
			Help:    "Time in seconds spent linting one file",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"language"}),
		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: LastRunDurationMetricName,
			Help: "Wall time in seconds of the last lint run",
		}),
	}
	m.Registry.MustRegister(
		m.filesLinted,
		m.diagnostics,
		m.fileErrors,
		m.lintDuration,
		m.lastRunDuration,
	)
	return m
}

// RecordFile accounts one linted file.
func (m *Metrics) RecordFile(report FileReport, elapsed time.Duration) {
	if m == nil {
		return
	}
	if report.Error != "" {
		m.fileErrors.Inc()
		return
	}
	m.filesLinted.WithLabelValues(report.Language).Inc()
	m.lintDuration.WithLabelValues(report.Language).Observe(elapsed.Seconds())
	for _, d := range report.Diagnostics {
		m.diagnostics.WithLabelValues(d.Selector.String(), string(d.MessageID)).Inc()
	}
}

// RecordRun stores the duration of a whole run.
func (m *Metrics) RecordRun(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.lastRunDuration.Set(elapsed.Seconds())
}

// WriteToTextfile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
