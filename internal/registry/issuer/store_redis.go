package issuer

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const enabledKeyPrefix = "issuer:enabled:"

// RedisStore shares the authorization table across instances. Key existence
// is the flag; deauthorization deletes the key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SetEnabled(ctx context.Context, issuerDID string, enabled bool) error {
	key := enabledKeyPrefix + issuerDID
	if enabled {
		return s.client.Set(ctx, key, "1", 0).Err()
	}
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) IsEnabled(ctx context.Context, issuerDID string) (bool, error) {
	_, err := s.client.Get(ctx, enabledKeyPrefix+issuerDID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
