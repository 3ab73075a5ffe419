package ports

import (
	"context"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
)

// CouponRepository defines the contract with the coupon store. The store is
// read-only from the core's perspective except for the usage counter, which
// the core increments atomically as part of order creation.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its normalized code.
	// Returns errs.ObjectNotFoundError if no such coupon exists.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// IncrementUsage atomically increments a coupon's usage counter, guarded
	// by the coupon's usage limit ("count < limit" evaluated in the store).
	// Returns coupon.CouponInvalidError with ReasonUsageLimitExceeded when
	// the limit is exhausted, leaving the counter untouched. Run inside the
	// order-creation transaction so the increment commits exactly when the
	// order does.
	IncrementUsage(ctx context.Context, code string) error
}
