// Package ratelimit throttles the public verification endpoints. Limits are
// keyed by client IP; the admin surface is guarded by authentication instead.
package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of one rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// BucketStore tracks request counts per key. The in-memory store serves a
// single instance; the Redis store shares limits across replicas.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
