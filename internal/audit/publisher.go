package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is an append-only sink for audit events. The in-memory store, the
// Postgres archive and the Kafka sink all satisfy it so the publisher does
// not care where events land.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and writes
// through a Store so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit stamps identity and time onto the event and appends it.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

// Fanout appends every event to all stores, returning the first failure.
type Fanout []Store

func (f Fanout) Append(ctx context.Context, event Event) error {
	for _, store := range f {
		if err := store.Append(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
