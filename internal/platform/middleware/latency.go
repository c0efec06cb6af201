package middleware

import (
	"net/http"
	"time"

	"attest/internal/platform/metrics"
)

// LatencyMiddleware records request latency per method, route and status.
func LatencyMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			m.ObserveRequest(r.Method, r.URL.Path, sw.status, time.Since(start))
		})
	}
}
