// File: metrics.go
// Title: Engine Metrics
// Description: Prometheus collectors for executions, completions, match
//              failures and registered chains. A nil *Metrics records
//              nothing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Execution outcomes recorded by Metrics
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// Metrics holds the engine collectors
type Metrics struct {
	executions        *prometheus.CounterVec
	completions       prometheus.Counter
	completionResults prometheus.Histogram
	failures          *prometheus.CounterVec
	chains            prometheus.Gauge
	duration          *prometheus.HistogramVec
}

// NewMetrics creates unregistered collectors under namespace
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Total command executions by outcome.",
		}, []string{"outcome"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Total completion requests.",
		}),
		completionResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_results",
			Help:      "Number of completions returned per request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_failures_total",
			Help:      "Chain match failures seen by executions, by reason.",
		}, []string{"reason"}),
		chains: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_chains",
			Help:      "Number of compiled chains currently registered.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of engine operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"operation"}),
	}
}

// Collectors returns all collectors
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{
		m.executions, m.completions, m.completionResults,
		m.failures, m.chains, m.duration,
	}
}

// Register registers all collectors with reg
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeExecution(outcome string, failures []MatchOutcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(outcome).Inc()
	for _, f := range failures {
		m.failures.WithLabelValues(f.Failure.Reason.String()).Inc()
	}
	m.duration.WithLabelValues("execute").Observe(elapsed.Seconds())
}

func (m *Metrics) observeCompletion(results int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.completions.Inc()
	m.completionResults.Observe(float64(results))
	m.duration.WithLabelValues("complete").Observe(elapsed.Seconds())
}

func (m *Metrics) setChains(n int) {
	if m == nil {
		return
	}
	m.chains.Set(float64(n))
}
