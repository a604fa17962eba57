package commands

import (
	"context"

	"freight/internal/core/ports"
)

// DispatchOutboxCommandHandler drains pending outbox events.
// Each event is published to the broker and marked processed; a publish
// failure marks the event failed with its error and moves on, so one bad
// event cannot wedge the queue. Dispatch outcomes are bookkeeping only and
// never touch business state.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.NotificationPublisher
	batchSize  int
}

// NewDispatchOutboxCommandHandler creates a handler for outbox dispatch.
// batchSize bounds how many events one sweep drains.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.NotificationPublisher,
	batchSize int,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		batchSize:  batchSize,
	}
}

// Handle processes one dispatch sweep. Returns how many events were
// published successfully.
func (h DispatchOutboxCommandHandler) Handle(ctx context.Context, command DispatchOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OutboxRepository().GetPending(ctx, h.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range pending {
		if publishErr := h.publisher.Publish(ctx, event); publishErr != nil {
			event.MarkFailed(publishErr)
		} else {
			event.MarkProcessed()
			published++
		}

		if err = uow.OutboxRepository().Update(ctx, event); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, nil
}
