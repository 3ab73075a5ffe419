package commands

import (
	"errors"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order into a new
// lifecycle state on behalf of an identified actor. The expected version is
// the version of the order the actor last observed; it lets the handler
// detect concurrent modifications before doing any other work.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Preparing,
//	    ownerID, order.RoleRestaurantOwner, 2, "started cooking", "")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition rejected: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	targetStatus       order.Status
	actorID            kernel.UUID
	actorRole          order.Role
	expectedVersion    int64
	notes              string
	cancellationReason string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition an order.
// Validates identifiers, the target status, the actor role, and that the
// expected version is positive. The cancellation reason is only meaningful
// for transitions into the cancelled state; the aggregate enforces that.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	actorID kernel.UUID,
	actorRole order.Role,
	expectedVersion int64,
	notes string,
	cancellationReason string,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		notes:              notes,
		cancellationReason: cancellationReason,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTargetStatus(targetStatus),
		statusCommand.setActor(actorID, actorRole),
		statusCommand.setExpectedVersion(expectedVersion),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the lifecycle state the actor wants the order in.
func (c ChangeOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// ActorID returns the identifier of the actor requesting the transition.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor claims for this transition.
func (c ChangeOrderStatusCommand) ActorRole() order.Role {
	return c.actorRole
}

// ExpectedVersion returns the order version the actor last observed.
func (c ChangeOrderStatusCommand) ExpectedVersion() int64 {
	return c.expectedVersion
}

// Notes returns the optional free-text note recorded with the transition.
func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}

// CancellationReason returns the reason supplied for a cancellation, or "".
func (c ChangeOrderStatusCommand) CancellationReason() string {
	return c.cancellationReason
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actorID kernel.UUID, actorRole order.Role) error {
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

func (c *ChangeOrderStatusCommand) setExpectedVersion(expectedVersion int64) error {
	if expectedVersion < 1 {
		return errs.NewValueIsInvalidError("expectedVersion")
	}

	c.expectedVersion = expectedVersion
	return nil
}
