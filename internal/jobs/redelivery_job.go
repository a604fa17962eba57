package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RedeliveryJob manages the scheduled requeue of failed door-to-door parcels.
// Runs hourly; each sweep puts eligible parcels back into sorting.
type RedeliveryJob struct {
	handler commands.RequeueFailedCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRedeliveryJob creates a new job for the redelivery sweep.
// Uses RequeueFailedCommandHandler to requeue failed parcels below the
// escalation threshold.
func NewRedeliveryJob(handler commands.RequeueFailedCommandHandler, logger *slog.Logger) *RedeliveryJob {
	return &RedeliveryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "redelivery_job"),
	}
}

// Start begins the redelivery job to run at the top of every hour.
func (j *RedeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRequeueFailedCommand()

		requeued, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Redelivery job failed", "error", err)
			return
		}

		if requeued > 0 {
			j.logger.InfoContext(ctx, "Parcels requeued for re-delivery", "count", requeued)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Redelivery job started (running hourly)")
	return nil
}

// Stop stops the redelivery job.
func (j *RedeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Redelivery job stopped")
}
