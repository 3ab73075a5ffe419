package commands

import (
	"context"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
)

// ApplyPaymentOutcomeCommandHandler applies payment-gateway outcomes to
// orders. A successful payment moves the order from created into accepted,
// a failed one into failed; any order no longer awaiting payment rejects the
// outcome with an invalid-transition error, which also makes redelivered
// gateway callbacks harmless.
type ApplyPaymentOutcomeCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationPublisher
}

// NewApplyPaymentOutcomeCommandHandler creates a handler for payment outcomes.
func NewApplyPaymentOutcomeCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationPublisher,
) ApplyPaymentOutcomeCommandHandler {
	return ApplyPaymentOutcomeCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the payment outcome command.
// The resulting transition is recorded against the system actor and notified
// after commit, like any other status change.
func (h *ApplyPaymentOutcomeCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentOutcomeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	if err = aggregate.ApplyPaymentOutcome(cmd.Succeeded(), cmd.FailureReason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyStatusChanged(ctx, aggregate.ID(), oldStatus, aggregate.Status())
	return nil
}
