package commands

import (
	"errors"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/guard"
)

var ErrCompleteDeliveredOrdersCommandIsNotConstructed = errors.New(
	"CompleteDeliveredOrdersCommand must be created via NewCompleteDeliveredOrdersCommand constructor",
)

// CompleteDeliveredOrdersCommand represents a sweep request: finalize every
// delivered order whose delivery happened at least the grace period ago and
// that the customer never confirmed. Run periodically by the job scheduler.
type CompleteDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	grace time.Duration

	guard guard.ConstructorGuard
}

// NewCompleteDeliveredOrdersCommand creates a sweep command with the given
// grace period. The grace period must be positive.
func NewCompleteDeliveredOrdersCommand(grace time.Duration) (CompleteDeliveredOrdersCommand, error) {
	sweepCommand := CompleteDeliveredOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if grace <= 0 {
		return CompleteDeliveredOrdersCommand{}, errs.NewValueIsInvalidError("grace")
	}
	sweepCommand.grace = grace

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveredOrdersCommandIsNotConstructed if validation fails.
func (c CompleteDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveredOrdersCommandIsNotConstructed)
}

// Grace returns how long a delivered order waits for customer confirmation
// before the sweep finalizes it.
func (c CompleteDeliveredOrdersCommand) Grace() time.Duration {
	return c.grace
}
