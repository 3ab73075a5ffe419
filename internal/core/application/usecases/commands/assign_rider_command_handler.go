package commands

import (
	"context"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
)

// AssignRiderCommandHandler handles rider assignment. Only the owner of the
// order's restaurant or an administrator may assign; the aggregate enforces
// that the order is still with the restaurant and has no rider yet.
type AssignRiderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogClient
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
// The CatalogClient resolves the restaurant's owner for the ownership check.
func NewAssignRiderCommandHandler(uowFactory OrderUoWFactory, catalog ports.CatalogClient) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the rider assignment command.
// Assignment bumps the order version but is not a status change, so no
// history entry is written and no notification is published.
func (h *AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
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

	if err = h.authorize(ctx, cmd, aggregate); err != nil {
		return err
	}

	if err = aggregate.AssignRider(cmd.RiderID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AssignRiderCommandHandler) authorize(ctx context.Context, cmd AssignRiderCommand, aggregate *order.Order) error {
	assignerRoles := []order.Role{order.RoleRestaurantOwner, order.RoleAdmin}

	switch cmd.ActorRole() {
	case order.RoleAdmin:
		return nil
	case order.RoleRestaurantOwner:
		ownerID, err := h.catalog.RestaurantOwner(ctx, aggregate.RestaurantID())
		if err != nil {
			return err
		}
		if !cmd.ActorID().IsEqual(ownerID) {
			return services.NewUnauthorizedError(cmd.ActorRole(), aggregate.Status(), assignerRoles)
		}
		return nil
	default:
		return services.NewUnauthorizedError(cmd.ActorRole(), aggregate.Status(), assignerRoles)
	}
}
