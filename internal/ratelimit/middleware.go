package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"attest/internal/platform/middleware"
)

// Middleware applies a per-IP limit to the routes it wraps.
type Middleware struct {
	store    BucketStore
	limit    int
	window   time.Duration
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns rate limiting off, for tests and demo mode.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(store BucketStore, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Limit wraps a handler with the per-IP check. Store failures let the request
// through: losing rate limiting is better than losing verification.
func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.store.Allow(r.Context(), clientIP(r), m.limit, m.window)
		if err != nil {
			m.logger.WarnContext(r.Context(), "rate limit check failed, allowing request",
				"error", err,
				"request_id", middleware.GetRequestID(r.Context()),
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(result.ResetAt).Seconds())+1))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"Too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
