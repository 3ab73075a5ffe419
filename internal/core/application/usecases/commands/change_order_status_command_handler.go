package commands

import (
	"context"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler handles actor-initiated order transitions:
// the restaurant accepting, the kitchen progressing, the rider driving the
// delivery leg, the customer confirming or cancelling.
//
// Checks run in a fixed order so concurrent callers see deterministic errors:
//  1. optimistic concurrency (the expected version must match the stored one)
//  2. the lifecycle graph (the move must be a legal edge)
//  3. authorization (the actor's role and relationship to the order)
//
// The persisted write is itself a compare-and-swap, so a race that slips past
// the precheck still loses with a version conflict instead of a lost update.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogClient
	gate       services.AuthorizationGate
	notifier   ports.NotificationPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for order transitions.
// The CatalogClient resolves the restaurant's owner for the authorization
// gate's relationship check; the NotificationPublisher is invoked after commit.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogClient,
	gate services.AuthorizationGate,
	notifier ports.NotificationPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		gate:       gate,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
// On success exactly one history entry is appended, the version increases by
// one, and one notification is published after the transaction commits.
// Notification delivery is best-effort and never fails the transition.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	if aggregate.Version() != cmd.ExpectedVersion() {
		return errs.NewVersionConflictError("order", cmd.ExpectedVersion(), aggregate.Version())
	}

	if !aggregate.Status().CanTransitionTo(cmd.TargetStatus()) {
		return order.NewInvalidTransitionError(aggregate.Status(), cmd.TargetStatus())
	}

	ownerID, err := h.resolveOwner(ctx, cmd.ActorRole(), aggregate.RestaurantID())
	if err != nil {
		return err
	}
	if !h.gate.CanTransition(cmd.ActorRole(), cmd.ActorID(), ownerID, aggregate, cmd.TargetStatus()) {
		return services.NewUnauthorizedError(cmd.ActorRole(), cmd.TargetStatus(),
			h.gate.RequiredRoles(cmd.TargetStatus()))
	}

	oldStatus := aggregate.Status()
	if err = aggregate.TransitionTo(
		cmd.TargetStatus(), cmd.ActorID(), cmd.Notes(), cmd.CancellationReason(), time.Now().UTC(),
	); err != nil {
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

// resolveOwner looks up the restaurant's owner, but only when the actor
// claims the restaurant-owner role; other roles never consult it.
func (h *ChangeOrderStatusCommandHandler) resolveOwner(
	ctx context.Context,
	role order.Role,
	restaurantID kernel.UUID,
) (kernel.UUID, error) {
	if role != order.RoleRestaurantOwner {
		return kernel.UUID{}, nil
	}
	return h.catalog.RestaurantOwner(ctx, restaurantID)
}
