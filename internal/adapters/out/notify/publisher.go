// Package notify implements the notification port. The current publisher
// writes structured log records; swapping in a push or message-broker
// publisher only touches this package.
package notify

import (
	"context"
	"log/slog"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
)

// LogPublisher emits one structured log record per accepted status
// transition. Delivery is best-effort by contract, which a log write
// trivially satisfies.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher writing to the given logger.
// A nil logger falls back to the default logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// NotifyStatusChanged records the transition.
func (p *LogPublisher) NotifyStatusChanged(ctx context.Context, orderID kernel.UUID, oldStatus, newStatus order.Status) error {
	p.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", orderID.String()),
		slog.String("from", oldStatus.String()),
		slog.String("to", newStatus.String()),
	)
	return nil
}
