package commands

import (
	"context"
	"errors"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// CompleteDeliveredOrdersCommandHandler finalizes delivered orders the
// customer never confirmed. Each qualifying order is transitioned to
// completed by the system actor inside its own transaction, so one stale
// order cannot block the rest of the sweep.
//
// An order a customer confirms concurrently loses the compare-and-swap and is
// skipped; it is already where the sweep wanted it.
type CompleteDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationPublisher
}

// NewCompleteDeliveredOrdersCommandHandler creates a handler for the
// completion sweep.
func NewCompleteDeliveredOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationPublisher,
) CompleteDeliveredOrdersCommandHandler {
	return CompleteDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the sweep command and returns how many orders it completed.
func (h *CompleteDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveredOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.Grace())

	delivered, err := h.loadDelivered(ctx)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, aggregate := range delivered {
		deliveredAt := aggregate.ActualDeliveryTime()
		if deliveredAt == nil || deliveredAt.After(cutoff) {
			continue
		}

		done, err := h.completeOne(ctx, aggregate.ID(), now)
		if err != nil {
			if errors.Is(err, errs.ErrVersionConflict) {
				continue
			}
			return completed, err
		}
		if !done {
			continue
		}

		_ = h.notifier.NotifyStatusChanged(ctx, aggregate.ID(), order.Delivered, order.Completed)
		completed++
	}

	return completed, nil
}

func (h *CompleteDeliveredOrdersCommandHandler) loadDelivered(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	delivered, err := uow.OrderRepository().GetAllInStatus(ctx, order.Delivered)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return delivered, nil
}

// completeOne reloads and transitions one order in its own transaction.
// Reloading keeps the compare-and-swap honest against transitions that
// happened after the sweep's initial listing.
func (h *CompleteDeliveredOrdersCommandHandler) completeOne(ctx context.Context, orderID kernel.UUID, now time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return false, err
	}

	if aggregate.Status() != order.Delivered {
		return false, nil
	}

	if err = aggregate.TransitionTo(order.Completed, order.SystemActorID, "auto-completed", "", now); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
