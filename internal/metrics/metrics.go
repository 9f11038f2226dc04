// Package metrics holds the Prometheus instrumentation for the
// access-control layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client.
// Pass to components that need to record metrics; a nil *Metrics is
// valid and records nothing.
type Metrics struct {
	GuardDecisions *prometheus.CounterVec
	RequestsTotal  *prometheus.CounterVec
	SessionLoads   prometheus.Counter
	ForcedLogouts  prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		GuardDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "library_client",
				Name:      "guard_decisions_total",
				Help:      "Navigation guard decisions",
			},
			[]string{"outcome"}, // outcome=allow/redirect
		),
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "library_client",
				Name:      "requests_total",
				Help:      "Outbound API requests by result class",
			},
			[]string{"method", "class"}, // class=ok/auth/forbidden/api/network
		),
		SessionLoads: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "library_client",
				Name:      "session_loads_total",
				Help:      "Session reconstitutions from durable storage",
			},
		),
		ForcedLogouts: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "library_client",
				Name:      "forced_logouts_total",
				Help:      "Session teardowns forced by authentication failures",
			},
		),
	}
}

// GuardDecision records one guard outcome. Safe on a nil receiver.
func (m *Metrics) GuardDecision(outcome string) {
	if m == nil {
		return
	}
	m.GuardDecisions.WithLabelValues(outcome).Inc()
}

// Request records one outbound request result. Safe on a nil receiver.
func (m *Metrics) Request(method, class string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, class).Inc()
}

// SessionLoad records one reconstitution from durable storage.
// Safe on a nil receiver.
func (m *Metrics) SessionLoad() {
	if m == nil {
		return
	}
	m.SessionLoads.Inc()
}

// ForcedLogout records one pipeline-forced teardown. Safe on a nil receiver.
func (m *Metrics) ForcedLogout() {
	if m == nil {
		return
	}
	m.ForcedLogouts.Inc()
}
