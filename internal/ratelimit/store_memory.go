package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryBucketStore implements BucketStore with per-key sliding windows.
// Not distributed; use RedisBucketStore when more than one replica serves
// traffic.
type InMemoryBucketStore struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{buckets: make(map[string]*slidingWindow)}
}

func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sw := s.buckets[key]
	if sw == nil {
		sw = &slidingWindow{window: window}
		s.buckets[key] = sw
	}
	sw.cleanup(now)

	if len(sw.timestamps)+1 > limit {
		resetAt := now.Add(window)
		if len(sw.timestamps) > 0 {
			resetAt = sw.timestamps[0].Add(window)
		}
		return &Result{Allowed: false, Remaining: 0, Limit: limit, ResetAt: resetAt}, nil
	}

	sw.timestamps = append(sw.timestamps, now)
	return &Result{
		Allowed:   true,
		Remaining: limit - len(sw.timestamps),
		Limit:     limit,
		ResetAt:   sw.timestamps[0].Add(window),
	}, nil
}

func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
