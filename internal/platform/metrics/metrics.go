// Package metrics holds all Prometheus metrics for the edge gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	GateDecisions      *prometheus.CounterVec
	TokenVerifications *prometheus.CounterVec
	GateDuration       prometheus.Histogram
	ProxyErrors        *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		GateDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "acont_edge_gate_decisions_total",
			Help: "Gate decisions by action and reason",
		}, []string{"action", "reason"}),
		TokenVerifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "acont_edge_token_verifications_total",
			Help: "Token verification attempts by result",
		}, []string{"result"}),
		GateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "acont_edge_gate_duration_seconds",
			Help:    "Latency of a full gate evaluation",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		ProxyErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "acont_edge_proxy_errors_total",
			Help: "Upstream proxy failures by upstream name",
		}, []string{"upstream"}),
	}
}

// ObserveDecision records one gate decision.
func (m *Metrics) ObserveDecision(action, reason string, took time.Duration) {
	m.GateDecisions.WithLabelValues(action, reason).Inc()
	m.GateDuration.Observe(took.Seconds())
}

// IncrementVerification records one token verification attempt.
func (m *Metrics) IncrementVerification(result string) {
	m.TokenVerifications.WithLabelValues(result).Inc()
}

// IncrementProxyError records one upstream failure.
func (m *Metrics) IncrementProxyError(upstream string) {
	m.ProxyErrors.WithLabelValues(upstream).Inc()
}
