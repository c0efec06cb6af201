package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps events in order of arrival. Used in tests and in demo
// mode, where there is no durable sink to write to.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListAll returns a copy of every recorded event.
func (s *InMemoryStore) ListAll(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}

// ListByToken returns events touching one token, oldest first.
func (s *InMemoryStore) ListByToken(_ context.Context, tokenID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.TokenID == tokenID {
			out = append(out, e)
		}
	}
	return out, nil
}
