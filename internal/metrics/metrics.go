// Package metrics provides Prometheus metrics for the simulation engine
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks evaluation and sweep activity on its own registry
type Metrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram

	sweepsTotal    prometheus.Counter
	sweepScenarios prometheus.Counter
	sweepFindings  *prometheus.CounterVec
	sweepDuration  prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a metrics instance with its own Prometheus registry
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of policy evaluations by decision",
			},
			[]string{"decision"},
		),
		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of single-context evaluations",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
		),
		sweepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweeps_total",
				Help:      "Total number of coverage gap sweeps",
			},
		),
		sweepScenarios: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_scenarios_total",
				Help:      "Total number of scenarios enumerated across sweeps",
			},
		),
		sweepFindings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_findings_total",
				Help:      "Total number of gap findings by severity",
			},
			[]string{"severity"},
		),
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sweep_duration_seconds",
				Help:      "Duration of coverage gap sweeps",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
	}

	registry.MustRegister(
		m.evaluationsTotal,
		m.evaluationDuration,
		m.sweepsTotal,
		m.sweepScenarios,
		m.sweepFindings,
		m.sweepDuration,
	)

	return m
}

// RecordEvaluation records one engine evaluation
func (m *Metrics) RecordEvaluation(decision string, duration time.Duration) {
	m.evaluationsTotal.WithLabelValues(decision).Inc()
	m.evaluationDuration.Observe(duration.Seconds())
}

// RecordSweep records one completed gap sweep
func (m *Metrics) RecordSweep(scenarios int, duration time.Duration) {
	m.sweepsTotal.Inc()
	m.sweepScenarios.Add(float64(scenarios))
	m.sweepDuration.Observe(duration.Seconds())
}

// RecordFinding records one gap finding
func (m *Metrics) RecordFinding(severity string) {
	m.sweepFindings.WithLabelValues(severity).Inc()
}

// Handler returns an HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
