package audit

import (
	"context"
	"errors"
	"log/slog"
)

// ErrInboxFull reports a dropped event: the worker is not keeping up.
var ErrInboxFull = errors.New("audit inbox full")

// Worker consumes audit events from a channel and persists them, decoupling
// request latency from sink latency. Emit into the inbox via ChannelStore;
// run one Worker per process.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled. Sink failures are
// logged, not fatal: losing an audit event must never take the registry down.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"action", string(event.Action),
					"event_id", event.ID.String(),
					"error", err,
				)
			}
		}
	}
}

// ChannelStore is the producer side of a Worker's inbox. Append never blocks;
// when the inbox is full the event is dropped and reported to the caller.
type ChannelStore struct {
	inbox chan<- Event
}

func NewChannelStore(inbox chan<- Event) *ChannelStore {
	return &ChannelStore{inbox: inbox}
}

func (s *ChannelStore) Append(_ context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		return ErrInboxFull
	}
}
