package ports

import (
	"context"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
)

// NotificationPublisher receives one call for every accepted status
// transition, after the transition has been durably committed. Delivery is
// best-effort: publish failures never roll back the transition.
type NotificationPublisher interface {
	NotifyStatusChanged(ctx context.Context, orderID kernel.UUID, oldStatus, newStatus order.Status) error
}
