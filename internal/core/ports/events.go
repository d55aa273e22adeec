package ports

import (
	"context"

	"github.com/bikeshop/shop-api/internal/core/domain"
)

// EventSink accepts domain events from services. Emit never blocks the caller
// and never fails the operation that produced the event.
type EventSink interface {
	Emit(event domain.Event)
}

// EventPublisher delivers a single event to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(domain.Event) {}
