package commands

import (
	"errors"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents a request to assign a delivery rider to an
// order. Assignment is initiated by the restaurant owner (for their own
// orders) or an administrator, while the restaurant still holds the order.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	riderID   kernel.UUID
	actorID   kernel.UUID
	actorRole order.Role

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to an order.
// Validates all identifiers and the actor role.
func NewAssignRiderCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	actorID kernel.UUID,
	actorRole order.Role,
) (AssignRiderCommand, error) {
	assignCommand := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setRiderID(riderID),
		assignCommand.setActor(actorID, actorRole),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignRiderCommandIsNotConstructed if validation fails.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign a rider to.
func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the identifier of the rider being assigned.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// ActorID returns the identifier of the actor requesting the assignment.
func (c AssignRiderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor claims for this assignment.
func (c AssignRiderCommand) ActorRole() order.Role {
	return c.actorRole
}

func (c *AssignRiderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *AssignRiderCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
