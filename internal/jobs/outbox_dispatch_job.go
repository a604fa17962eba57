package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxDispatchJob manages the scheduled dispatch of pending outbox events.
// Runs every five seconds to push recorded notifications to the broker.
type OutboxDispatchJob struct {
	handler commands.DispatchOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxDispatchJob creates a new job for draining the outbox.
// Uses DispatchOutboxCommandHandler to publish pending events in batches.
func NewOutboxDispatchJob(handler commands.DispatchOutboxCommandHandler, logger *slog.Logger) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the outbox dispatch job to run every five seconds.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchOutboxCommand()

		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch job failed", "error", err)
			return
		}

		if published > 0 {
			j.logger.InfoContext(ctx, "Outbox events published", "count", published)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every five seconds)")
	return nil
}

// Stop stops the outbox dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}
