package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
)

// OrderCompletionJob periodically finalizes delivered orders the customer
// never confirmed. Runs every minute; the grace period decides how long a
// delivered order waits before the sweep closes it.
type OrderCompletionJob struct {
	handler commands.CompleteDeliveredOrdersCommandHandler
	grace   time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderCompletionJob creates the completion sweep job with the given
// grace period.
func NewOrderCompletionJob(
	handler commands.CompleteDeliveredOrdersCommandHandler,
	grace time.Duration,
	logger *slog.Logger,
) *OrderCompletionJob {
	return &OrderCompletionJob{
		handler: handler,
		grace:   grace,
		cron:    cron.New(),
		logger:  logger.With("component", "order_completion_job"),
	}
}

// Start begins the completion sweep, running every minute.
func (j *OrderCompletionJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCompleteDeliveredOrdersCommand(j.grace)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Order completion job misconfigured", "error", cmdErr)
			return
		}

		completed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Order completion job failed", "error", handleErr)
			return
		}

		if completed > 0 {
			j.logger.InfoContext(ctx, "Auto-completed delivered orders", "count", completed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order completion job started (running every minute)")
	return nil
}

// Stop stops the completion sweep.
func (j *OrderCompletionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order completion job stopped")
}
