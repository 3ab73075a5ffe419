package commands

import (
	"errors"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/guard"
)

var ErrApplyPaymentOutcomeCommandIsNotConstructed = errors.New(
	"ApplyPaymentOutcomeCommand must be created via NewApplyPaymentOutcomeCommand constructor",
)

// ApplyPaymentOutcomeCommand represents a payment-gateway outcome for an
// order awaiting payment: either the payment succeeded, or it failed with a
// reason. The payment collaborator is a system actor, so the command carries
// no actor identity and no expected version.
type ApplyPaymentOutcomeCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	succeeded     bool
	failureReason string

	guard guard.ConstructorGuard
}

// NewApplyPaymentOutcomeCommand creates a command recording a payment outcome.
// The failure reason is optional; gateways do not always report one.
func NewApplyPaymentOutcomeCommand(orderID kernel.UUID, succeeded bool, failureReason string) (ApplyPaymentOutcomeCommand, error) {
	outcomeCommand := ApplyPaymentOutcomeCommand{
		succeeded:     succeeded,
		failureReason: failureReason,
		guard:         guard.NewConstructorGuard(),
	}

	if err := outcomeCommand.setOrderID(orderID); err != nil {
		return ApplyPaymentOutcomeCommand{}, err
	}

	return outcomeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyPaymentOutcomeCommandIsNotConstructed if validation fails.
func (c ApplyPaymentOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentOutcomeCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the outcome applies to.
func (c ApplyPaymentOutcomeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Succeeded reports whether the payment went through.
func (c ApplyPaymentOutcomeCommand) Succeeded() bool {
	return c.succeeded
}

// FailureReason returns why the payment failed, or "" on success.
func (c ApplyPaymentOutcomeCommand) FailureReason() string {
	return c.failureReason
}

func (c *ApplyPaymentOutcomeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
