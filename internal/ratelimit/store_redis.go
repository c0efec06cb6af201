package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBucketStore implements BucketStore with a fixed window counter shared
// across replicas. The window boundary is coarser than the in-memory sliding
// window, which is acceptable for public read endpoints.
type RedisBucketStore struct {
	client *redis.Client
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(window.Seconds()))

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}

	n := int(count.Val())
	resetAt := time.Now().Truncate(window).Add(window)
	if n > limit {
		return &Result{Allowed: false, Remaining: 0, Limit: limit, ResetAt: resetAt}, nil
	}
	return &Result{Allowed: true, Remaining: limit - n, Limit: limit, ResetAt: resetAt}, nil
}
