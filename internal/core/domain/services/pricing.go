package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

var (
	// ErrItemUnavailable is the sentinel error for orders referencing catalog
	// items that do not exist or are currently unavailable. Orders are
	// all-or-nothing: one unavailable item rejects the whole order.
	ErrItemUnavailable = errors.New("one or more items are unavailable")

	// ErrPricingInvariantViolation is the sentinel error for pricing results
	// that would break the monetary invariant (a negative total). This is a
	// defect, never silently clamped to zero.
	ErrPricingInvariantViolation = errors.New("pricing invariant violation")
)

// DefaultTaxRateBasisPoints is the reference tax policy: 8%.
const DefaultTaxRateBasisPoints = 800

// DefaultBaseDeliveryFeeCents is the delivery fee used when a restaurant has
// no configured fee ($2.99).
const DefaultBaseDeliveryFeeCents = 299

// CatalogItem is one entry of the catalog snapshot: the current price and
// availability of a menu item, captured at resolution time.
type CatalogItem struct {
	ID             kernel.UUID
	Name           string
	UnitPriceCents int64
	Available      bool
}

// ResolvedItem is a requested order line merged with its catalog snapshot.
// Unresolved requests (the catalog knows no such item) carry Available=false.
type ResolvedItem struct {
	CatalogItemID  kernel.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
	Notes          string
	Available      bool
}

// DeliveryFeePolicy is a restaurant's delivery-fee configuration: a flat base
// fee, optionally tiered by delivery distance.
type DeliveryFeePolicy struct {
	BaseFeeCents   int64
	DistanceTiered bool
	DistanceKm     float64
}

// ItemUnavailableError reports which requested items failed catalog resolution.
type ItemUnavailableError struct {
	CatalogItemIDs []kernel.UUID
}

// NewItemUnavailableError creates an ItemUnavailableError for the given items.
func NewItemUnavailableError(ids []kernel.UUID) *ItemUnavailableError {
	return &ItemUnavailableError{CatalogItemIDs: ids}
}

func (e *ItemUnavailableError) Error() string {
	ids := make([]string, len(e.CatalogItemIDs))
	for i, id := range e.CatalogItemIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: %s", ErrItemUnavailable, strings.Join(ids, ", "))
}

func (e *ItemUnavailableError) Unwrap() error {
	return ErrItemUnavailable
}

// PricingInvariantViolationError reports a computed breakdown whose total
// would be negative.
type PricingInvariantViolationError struct {
	Pricing order.Pricing
}

func (e *PricingInvariantViolationError) Error() string {
	return fmt.Sprintf("%s: total %d is negative (subtotal %d, discount %d, delivery fee %d, tax %d)",
		ErrPricingInvariantViolation, e.Pricing.TotalCents, e.Pricing.SubtotalCents,
		e.Pricing.DiscountCents, e.Pricing.DeliveryFeeCents, e.Pricing.TaxCents)
}

func (e *PricingInvariantViolationError) Unwrap() error {
	return ErrPricingInvariantViolation
}

// DeliveryFeeCents computes the delivery fee for a policy. Flat policies
// return the base fee; distance-tiered policies add a surcharge per tier:
// up to 2 km the base fee, up to 5 km base plus 100, beyond that base plus 200.
// A zero base fee falls back to DefaultBaseDeliveryFeeCents.
//
// The function is pure.
func DeliveryFeeCents(policy DeliveryFeePolicy) int64 {
	base := policy.BaseFeeCents
	if base == 0 {
		base = DefaultBaseDeliveryFeeCents
	}
	if !policy.DistanceTiered {
		return base
	}
	return TieredDeliveryFeeCents(base, policy.DistanceKm)
}

// TieredDeliveryFeeCents applies the distance surcharge tiers to a base fee.
func TieredDeliveryFeeCents(baseFeeCents int64, distanceKm float64) int64 {
	switch {
	case distanceKm <= 2:
		return baseFeeCents
	case distanceKm <= 5:
		return baseFeeCents + 100
	default:
		return baseFeeCents + 200
	}
}

// PricingEngine computes the monetary breakdown of a candidate order from a
// resolved catalog snapshot, an optional coupon, and a delivery-fee policy.
//
// All arithmetic is integer cents. Tax is computed once on the discounted
// subtotal with round-half-away-from-zero, never accumulated per item in
// floating point.
type PricingEngine struct {
	taxRateBasisPoints int64
}

// NewPricingEngine creates a pricing engine with the given tax rate in basis
// points (800 = 8%). A non-positive rate falls back to the reference policy.
func NewPricingEngine(taxRateBasisPoints int64) PricingEngine {
	if taxRateBasisPoints <= 0 {
		taxRateBasisPoints = DefaultTaxRateBasisPoints
	}
	return PricingEngine{taxRateBasisPoints: taxRateBasisPoints}
}

// TaxRateBasisPoints returns the configured tax rate.
func (e PricingEngine) TaxRateBasisPoints() int64 {
	return e.taxRateBasisPoints
}

// Quote computes the full monetary breakdown for resolved items.
//
// Rules:
//   - rejects the whole order with ItemUnavailableError if any item failed
//     catalog resolution; there are no partial orders
//   - applies the coupon only if it qualifies (active, inside its window,
//     minimum met); a non-qualifying coupon is an error, never silently skipped
//   - clamps the discount to the subtotal, so a fixed coupon larger than the
//     order makes it free rather than negative
//   - taxCents = round((subtotal - discount) * rate), half away from zero
//   - totalCents = subtotal - discount + deliveryFee + tax, and a negative
//     total is rejected with PricingInvariantViolationError
func (e PricingEngine) Quote(
	items []ResolvedItem,
	policy DeliveryFeePolicy,
	c *coupon.Coupon,
	now time.Time,
) (order.Pricing, error) {
	if len(items) == 0 {
		return order.Pricing{}, errs.NewValueIsRequiredError("items")
	}

	var unavailable []kernel.UUID
	var subtotal int64
	for _, item := range items {
		if !item.Available {
			unavailable = append(unavailable, item.CatalogItemID)
			continue
		}
		if item.Quantity < 1 {
			return order.Pricing{}, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, 100)
		}
		subtotal += item.UnitPriceCents * int64(item.Quantity)
	}
	if len(unavailable) > 0 {
		return order.Pricing{}, NewItemUnavailableError(unavailable)
	}

	var discount int64
	if c != nil {
		if err := c.RedeemableAt(now, subtotal); err != nil {
			return order.Pricing{}, err
		}
		discount = c.DiscountFor(subtotal)
		// A fixed discount may exceed the subtotal; the order is then free of
		// charge but never carries a negative tax or total.
		if discount > subtotal {
			discount = subtotal
		}
	}

	fee := DeliveryFeeCents(policy)
	tax := roundBasisPoints(subtotal-discount, e.taxRateBasisPoints)

	pricing := order.Pricing{
		SubtotalCents:    subtotal,
		DiscountCents:    discount,
		DeliveryFeeCents: fee,
		TaxCents:         tax,
		TotalCents:       subtotal - discount + fee + tax,
	}

	if pricing.TotalCents < 0 {
		return order.Pricing{}, &PricingInvariantViolationError{Pricing: pricing}
	}

	return pricing, nil
}

// roundBasisPoints multiplies cents by a basis-point rate and rounds half
// away from zero, in pure integer arithmetic.
func roundBasisPoints(cents, basisPoints int64) int64 {
	product := cents * basisPoints
	if product >= 0 {
		return (product + 5000) / 10000
	}
	return (product - 5000) / 10000
}
