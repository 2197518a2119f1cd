package policy

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// Metrics tracks policy loading and reload operations
type Metrics struct {
	reloadAttempts prometheus.Counter
	reloadSuccess  prometheus.Counter
	reloadFailures prometheus.Counter
	reloadDuration prometheus.Histogram
	policyCount    prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the policy metrics singleton
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		registry := prometheus.NewRegistry()

		metrics = &Metrics{
			registry: registry,
			reloadAttempts: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "ca_policy_reload_attempts_total",
				Help: "Total number of policy reload attempts",
			}),
			reloadSuccess: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "ca_policy_reload_success_total",
				Help: "Total number of successful policy reloads",
			}),
			reloadFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "ca_policy_reload_failures_total",
				Help: "Total number of failed policy reloads",
			}),
			reloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "ca_policy_reload_duration_seconds",
				Help:    "Duration of policy reloads",
				Buckets: prometheus.DefBuckets,
			}),
			policyCount: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "ca_policy_count",
				Help: "Number of policies currently loaded",
			}),
		}

		registry.MustRegister(
			metrics.reloadAttempts,
			metrics.reloadSuccess,
			metrics.reloadFailures,
			metrics.reloadDuration,
			metrics.policyCount,
		)
	})
	return metrics
}

// RecordReloadAttempt records a reload attempt
func (m *Metrics) RecordReloadAttempt() {
	m.reloadAttempts.Inc()
}

// RecordReloadSuccess records a successful reload
func (m *Metrics) RecordReloadSuccess(duration time.Duration, count int) {
	m.reloadSuccess.Inc()
	m.reloadDuration.Observe(duration.Seconds())
	m.policyCount.Set(float64(count))
}

// RecordReloadFailure records a failed reload
func (m *Metrics) RecordReloadFailure() {
	m.reloadFailures.Inc()
}

// Registry returns the policy metrics registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
