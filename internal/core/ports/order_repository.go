// Package ports defines the contracts between the order-processing core and
// its external collaborators: persistence, the item catalog, the coupon
// store, and the notification channel. These interfaces establish the
// dependency-inversion boundary and keep the core transport-agnostic.
package ports

import (
	"context"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. The order must be valid and must
	// not already exist; the order number's uniqueness is enforced here.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a mutated order aggregate with a compare-and-swap on
	// the version column: the write succeeds only if the stored version
	// still matches the version the aggregate was loaded with. On a lost
	// race it returns errs.VersionConflictError and persists nothing.
	//
	// The aggregate's status, coupled fields, and newly appended history
	// entries are committed as one atomic write; the existing history is
	// never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-facing number.
	// Returns errs.ObjectNotFoundError if no such order exists.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given lifecycle
	// state. Used by the scheduled completion sweep.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// CountCouponRedemptions counts the customer's orders that redeemed the
	// given coupon code, excluding cancelled and failed orders. Used to
	// enforce the coupon's per-user limit.
	CountCouponRedemptions(ctx context.Context, customerID kernel.UUID, code string) (int64, error)
}
