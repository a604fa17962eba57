package ports

import (
	"context"

	"freight/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for the transactional
// outbox. Events are enqueued inside business transactions and drained by
// the background dispatcher.
type OutboxRepository interface {
	// Add enqueues a pending event.
	Add(ctx context.Context, event *outbox.Event) error

	// AddBatch enqueues many pending events in one round trip.
	AddBatch(ctx context.Context, events []*outbox.Event) error

	// Update persists a dispatch outcome (processed or failed with retry).
	Update(ctx context.Context, event *outbox.Event) error

	// GetPending retrieves up to limit undispatched events, oldest first.
	// Failed events below the dispatcher's retry cap are included.
	GetPending(ctx context.Context, limit int) ([]*outbox.Event, error)
}
