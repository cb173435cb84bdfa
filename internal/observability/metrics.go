// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh results
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds all Prometheus metrics for the dashboard.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Reader metrics
	RefreshCycles   *prometheus.CounterVec
	StepFailures    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram

	// Position metrics
	WalletBalance prometheus.Gauge
	StakedAmount  prometheus.Gauge
	LockRemaining prometheus.Gauge

	// Action metrics
	Actions *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "staking_dashboard"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		RefreshCycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "refresh_cycles_total",
			Help:      "Total number of chain state refresh cycles by result",
		}, []string{"result"}),
		StepFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "step_failures_total",
			Help:      "Total number of defaulted reader steps by step and reason",
		}, []string{"step", "reason"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of chain state refresh cycles",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		WalletBalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "position",
			Name:      "wallet_balance_tokens",
			Help:      "Token balance of the connected wallet",
		}),
		StakedAmount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "position",
			Name:      "staked_tokens",
			Help:      "Amount staked by the connected wallet",
		}),
		LockRemaining: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "position",
			Name:      "lock_remaining_seconds",
			Help:      "Seconds until the position can be unstaked",
		}),

		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "submitted_total",
			Help:      "Total number of stake/unstake submissions by kind and result code",
		}, []string{"kind", "code"}),
	}

	reg.MustRegister(collectors.NewGoCollector())
	return m
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (tests and custom collectors)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRefresh records one reader cycle
func (m *Metrics) ObserveRefresh(seconds float64, failed bool) {
	if m == nil {
		return
	}
	result := ResultOK
	if failed {
		result = ResultError
	}
	m.RefreshCycles.WithLabelValues(result).Inc()
	m.RefreshDuration.Observe(seconds)
}

// StepFailed records a reader step that fell back to its default
func (m *Metrics) StepFailed(step, reason string) {
	if m == nil {
		return
	}
	m.StepFailures.WithLabelValues(step, reason).Inc()
}

// SetPosition records the latest balances
func (m *Metrics) SetPosition(walletBalance, staked float64) {
	if m == nil {
		return
	}
	m.WalletBalance.Set(walletBalance)
	m.StakedAmount.Set(staked)
}

// SetLockRemaining records the lock countdown
func (m *Metrics) SetLockRemaining(seconds int64) {
	if m == nil {
		return
	}
	m.LockRemaining.Set(float64(seconds))
}

// ActionDone records a submission outcome; code is "ok" on success
func (m *Metrics) ActionDone(kind, code string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(kind, code).Inc()
}
