// Package metrics exposes ledger observations as Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

const namespace = "ewallet"

// PrometheusLedgerMetrics implements adapter.LedgerMetrics with counters
// registered on its own registry.
type PrometheusLedgerMetrics struct {
	registry *prometheus.Registry

	mutations      *prometheus.CounterVec
	persists       *prometheus.CounterVec
	loadFailures   *prometheus.CounterVec
	skippedRecords *prometheus.CounterVec
}

// NewPrometheusLedgerMetrics creates the ledger collectors together with
// the Go runtime and process collectors.
func NewPrometheusLedgerMetrics() *PrometheusLedgerMetrics {
	registry := prometheus.NewRegistry()

	m := &PrometheusLedgerMetrics{
		registry: registry,
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "mutations_total",
			Help:      "Ledger operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "slice_writes_total",
			Help:      "Durable slice writes by slice and outcome.",
		}, []string{"slice", "outcome"}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "slice_load_failures_total",
			Help:      "Slices that fell back to their default on load.",
		}, []string{"slice"}),
		skippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "skipped_records_total",
			Help:      "Malformed records dropped while loading.",
		}, []string{"slice"}),
	}

	registry.MustRegister(
		m.mutations,
		m.persists,
		m.loadFailures,
		m.skippedRecords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

var _ adapter.LedgerMetrics = (*PrometheusLedgerMetrics)(nil)

func (m *PrometheusLedgerMetrics) MutationApplied(operation string) {
	m.mutations.WithLabelValues(operation, "applied").Inc()
}

func (m *PrometheusLedgerMetrics) MutationRejected(operation string) {
	m.mutations.WithLabelValues(operation, "rejected").Inc()
}

func (m *PrometheusLedgerMetrics) SlicePersisted(slice string) {
	m.persists.WithLabelValues(slice, "ok").Inc()
}

func (m *PrometheusLedgerMetrics) SlicePersistFailed(slice string) {
	m.persists.WithLabelValues(slice, "error").Inc()
}

func (m *PrometheusLedgerMetrics) SliceLoadFailed(slice string) {
	m.loadFailures.WithLabelValues(slice).Inc()
}

func (m *PrometheusLedgerMetrics) RecordSkipped(slice string) {
	m.skippedRecords.WithLabelValues(slice).Inc()
}

// Registry returns the registry the collectors are registered on.
func (m *PrometheusLedgerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusLedgerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
