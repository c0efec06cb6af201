package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module. A nil *Metrics is
// valid and records nothing, so services can run without metrics in tests.
type Metrics struct {
	// Verification outcomes by result and backend
	Verifications *prometheus.CounterVec

	// Mint outcomes by result
	Mints *prometheus.CounterVec

	// Revocation outcomes by result
	Revocations *prometheus.CounterVec

	// Time spent waiting for ledger confirmation
	ConfirmLatency prometheus.Histogram
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attest_verifications_total",
			Help: "Total verification requests by outcome and backend",
		}, []string{"outcome", "backend"}), // outcome: "verified", "revoked", "expired", "not_found"

		Mints: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attest_mints_total",
			Help: "Total mint attempts by result",
		}, []string{"result"}), // result: "ok", "duplicate", "unauthorized", "error"

		Revocations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attest_revocations_total",
			Help: "Total revocation attempts by result",
		}, []string{"result"}),

		ConfirmLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attest_ledger_confirm_duration_seconds",
			Help:    "Time from transaction submission to ledger confirmation",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncrementVerification records a verification outcome.
func (m *Metrics) IncrementVerification(outcome, backend string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome, backend).Inc()
	}
}

// IncrementMint records a mint result.
func (m *Metrics) IncrementMint(result string) {
	if m != nil {
		m.Mints.WithLabelValues(result).Inc()
	}
}

// IncrementRevocation records a revocation result.
func (m *Metrics) IncrementRevocation(result string) {
	if m != nil {
		m.Revocations.WithLabelValues(result).Inc()
	}
}

// ObserveConfirmLatency records how long a write waited for confirmation.
func (m *Metrics) ObserveConfirmLatency(d time.Duration) {
	if m != nil {
		m.ConfirmLatency.Observe(d.Seconds())
	}
}
