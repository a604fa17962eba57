package ports

import (
	"context"

	"freight/internal/core/domain/model/outbox"
)

// NotificationPublisher hands a committed outbox event to the message broker
// for the downstream SMS/email notifiers. Publishing happens strictly after
// the business transaction committed; a failure here is recorded on the
// event and retried, never propagated into business state.
type NotificationPublisher interface {
	Publish(ctx context.Context, event *outbox.Event) error
}
