package issuer

import (
	"context"
	"sync"
)

// InMemoryStore keeps the authorization table in a map. Suitable for single
// instance deployments and tests; use RedisStore or PostgresStore when more
// than one process shares the table.
type InMemoryStore struct {
	mu      sync.RWMutex
	enabled map[string]bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{enabled: make(map[string]bool)}
}

func (s *InMemoryStore) SetEnabled(_ context.Context, issuerDID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled {
		s.enabled[issuerDID] = true
		return nil
	}
	delete(s.enabled, issuerDID)
	return nil
}

func (s *InMemoryStore) IsEnabled(_ context.Context, issuerDID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled[issuerDID], nil
}
