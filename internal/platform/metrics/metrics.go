package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-wide HTTP metrics. Feature-level metrics live next to
// their services.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all platform metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attest_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
	}
}
