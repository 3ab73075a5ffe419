package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

var (
	// ErrCouponIsNotConstructed is returned when a Coupon instance was not
	// created through NewCoupon or RestoreCoupon.
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon or RestoreCoupon")

	// ErrCouponInvalid is the sentinel error for coupons that cannot be
	// redeemed. Use CouponInvalidError to learn the exact reason.
	ErrCouponInvalid = errors.New("coupon is not redeemable")
)

// DiscountType distinguishes percentage discounts from fixed-amount discounts.
type DiscountType int

const (
	// DiscountUnknown represents an invalid or undefined discount type.
	DiscountUnknown DiscountType = iota

	// DiscountPercentage discounts a percentage of the subtotal,
	// optionally capped by MaxDiscountCents.
	DiscountPercentage

	// DiscountFixed discounts a fixed amount of cents.
	DiscountFixed
)

// discountTypeStrings returns the storage representation of every discount type.
func discountTypeStrings() map[DiscountType]string {
	return map[DiscountType]string{
		DiscountUnknown:    "unknown",
		DiscountPercentage: "percentage",
		DiscountFixed:      "fixed",
	}
}

// DiscountTypeFromString parses the storage representation of a discount type.
func DiscountTypeFromString(s string) (DiscountType, error) {
	for dt, str := range discountTypeStrings() {
		if str == s && dt != DiscountUnknown {
			return dt, nil
		}
	}
	return DiscountUnknown, errs.NewValueIsInvalidErrorWithCause("discountType",
		fmt.Errorf("%q is not a valid discount type", s))
}

// Validate checks if the DiscountType value is defined.
func (d DiscountType) Validate() error {
	switch d {
	case DiscountPercentage, DiscountFixed:
		return nil
	case DiscountUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("discountType",
			fmt.Errorf("%d is not a valid discount type", int(d)))
	}
}

// String returns the storage name of the discount type, e.g. "percentage".
func (d DiscountType) String() string {
	if str, ok := discountTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// InvalidReason tells callers why a coupon could not be redeemed, so the
// excluded HTTP layer can distinguish the sub-reasons in its payload.
type InvalidReason int

const (
	// ReasonNotFound means no coupon with the given code exists.
	ReasonNotFound InvalidReason = iota

	// ReasonInactive means the coupon was deactivated by an operator.
	ReasonInactive

	// ReasonOutsideWindow means now is before startsAt or after expiresAt.
	ReasonOutsideWindow

	// ReasonMinOrderNotMet means the subtotal is below the coupon's minimum.
	ReasonMinOrderNotMet

	// ReasonUsageLimitExceeded means the coupon's global usage limit is exhausted.
	ReasonUsageLimitExceeded

	// ReasonPerUserLimitExceeded means this customer already redeemed the
	// coupon the maximum number of times.
	ReasonPerUserLimitExceeded
)

// String returns a wire-friendly name for the reason, e.g. "min_order_not_met".
func (r InvalidReason) String() string {
	switch r {
	case ReasonNotFound:
		return "not_found"
	case ReasonInactive:
		return "inactive"
	case ReasonOutsideWindow:
		return "outside_window"
	case ReasonMinOrderNotMet:
		return "min_order_not_met"
	case ReasonUsageLimitExceeded:
		return "usage_limit_exceeded"
	case ReasonPerUserLimitExceeded:
		return "per_user_limit_exceeded"
	default:
		return "unknown"
	}
}

// CouponInvalidError reports that a coupon cannot be redeemed and why.
type CouponInvalidError struct {
	Code   string
	Reason InvalidReason
}

// NewCouponInvalidError creates a CouponInvalidError for the given code and reason.
func NewCouponInvalidError(code string, reason InvalidReason) *CouponInvalidError {
	return &CouponInvalidError{Code: code, Reason: reason}
}

func (e *CouponInvalidError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrCouponInvalid, e.Code, e.Reason)
}

func (e *CouponInvalidError) Unwrap() error {
	return ErrCouponInvalid
}

// NormalizeCode canonicalizes a coupon code: trimmed and uppercased.
// All lookups and comparisons use the normalized form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Coupon is a discount rule identified by a code, with usage and eligibility
// limits. Coupons are created by operators, consumed at most once per
// qualifying order, and never deleted, only deactivated.
//
// A MaxDiscountCents of 0 means no cap; a nil UsageLimit means unlimited
// redemptions. The usage counter itself is owned by the coupon store and
// incremented atomically as part of order creation, so the count carried here
// may be a stale snapshot: the store's conditional increment has the final word.
type Coupon struct {
	code             string
	discountType     DiscountType
	discountValue    int64 // percent for percentage type, cents for fixed type
	minOrderCents    int64
	maxDiscountCents int64
	usageLimit       *int64
	usageCount       int64
	perUserLimit     int64
	startsAt         time.Time
	expiresAt        time.Time
	isActive         bool

	isConstructed bool
}

// NewCoupon creates a coupon with validation. The code is normalized.
func NewCoupon(
	code string,
	discountType DiscountType,
	discountValue int64,
	minOrderCents int64,
	maxDiscountCents int64,
	usageLimit *int64,
	perUserLimit int64,
	startsAt, expiresAt time.Time,
) (*Coupon, error) {
	c := &Coupon{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setCode(code),
		c.setDiscount(discountType, discountValue),
		c.setLimits(minOrderCents, maxDiscountCents, usageLimit, perUserLimit),
		c.setWindow(startsAt, expiresAt),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCoupon reconstructs a coupon from persistence, including its usage
// counter and active flag.
func RestoreCoupon(
	code string,
	discountType DiscountType,
	discountValue int64,
	minOrderCents int64,
	maxDiscountCents int64,
	usageLimit *int64,
	usageCount int64,
	perUserLimit int64,
	startsAt, expiresAt time.Time,
	isActive bool,
) (*Coupon, error) {
	c, err := NewCoupon(code, discountType, discountValue, minOrderCents, maxDiscountCents,
		usageLimit, perUserLimit, startsAt, expiresAt)
	if err != nil {
		return nil, err
	}

	if usageCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("usageCount",
			fmt.Errorf("%d is negative", usageCount))
	}
	c.usageCount = usageCount
	c.isActive = isActive
	return c, nil
}

// Validate ensures the coupon was created via a constructor.
func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

// Code returns the normalized coupon code.
func (c *Coupon) Code() string {
	return c.code
}

// DiscountType returns whether the coupon is percentage- or fixed-based.
func (c *Coupon) DiscountType() DiscountType {
	return c.discountType
}

// DiscountValue returns the percent (percentage type) or cents (fixed type).
func (c *Coupon) DiscountValue() int64 {
	return c.discountValue
}

// MinOrderCents returns the minimum subtotal required to redeem the coupon.
func (c *Coupon) MinOrderCents() int64 {
	return c.minOrderCents
}

// MaxDiscountCents returns the discount cap in cents, or 0 for no cap.
func (c *Coupon) MaxDiscountCents() int64 {
	return c.maxDiscountCents
}

// UsageLimit returns the global redemption limit, or nil for unlimited.
func (c *Coupon) UsageLimit() *int64 {
	return c.usageLimit
}

// UsageCount returns the redemption counter snapshot carried by this instance.
func (c *Coupon) UsageCount() int64 {
	return c.usageCount
}

// PerUserLimit returns how many times one customer may redeem the coupon.
func (c *Coupon) PerUserLimit() int64 {
	return c.perUserLimit
}

// ActiveWindow returns the redemption window [startsAt, expiresAt].
func (c *Coupon) ActiveWindow() (startsAt, expiresAt time.Time) {
	return c.startsAt, c.expiresAt
}

// IsActive reports whether the coupon has not been deactivated by an operator.
func (c *Coupon) IsActive() bool {
	return c.isActive
}

// Deactivate withdraws the coupon from circulation. Coupons are never deleted.
func (c *Coupon) Deactivate() {
	c.isActive = false
}

// RedeemableAt checks every redemption precondition except the per-user limit
// (which needs the customer's redemption history) at the given time and
// subtotal. Returns a CouponInvalidError carrying the first failing reason,
// or nil if the coupon qualifies.
//
// The usage-limit check here is advisory, based on this instance's counter
// snapshot; the store's atomic conditional increment at commit time is
// authoritative.
func (c *Coupon) RedeemableAt(now time.Time, subtotalCents int64) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.isActive {
		return NewCouponInvalidError(c.code, ReasonInactive)
	}
	if now.Before(c.startsAt) || now.After(c.expiresAt) {
		return NewCouponInvalidError(c.code, ReasonOutsideWindow)
	}
	if subtotalCents < c.minOrderCents {
		return NewCouponInvalidError(c.code, ReasonMinOrderNotMet)
	}
	if c.usageLimit != nil && c.usageCount >= *c.usageLimit {
		return NewCouponInvalidError(c.code, ReasonUsageLimitExceeded)
	}
	return nil
}

// DiscountFor computes the discount in cents for the given subtotal.
// Percentage discounts round half away from zero on cents and are clamped to
// MaxDiscountCents when a cap is set; fixed discounts are the configured cents,
// also clamped when a cap is present.
//
// DiscountFor does not check redeemability; call RedeemableAt first.
func (c *Coupon) DiscountFor(subtotalCents int64) int64 {
	var discount int64
	switch c.discountType {
	case DiscountPercentage:
		// Integer round-half-up; all quantities are non-negative, so this is
		// round-half-away-from-zero.
		discount = (subtotalCents*c.discountValue + 50) / 100
	case DiscountFixed:
		discount = c.discountValue
	default:
		return 0
	}

	if c.maxDiscountCents > 0 && discount > c.maxDiscountCents {
		discount = c.maxDiscountCents
	}
	return discount
}

func (c *Coupon) setCode(code string) error {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = normalized
	return nil
}

func (c *Coupon) setDiscount(discountType DiscountType, discountValue int64) error {
	if err := discountType.Validate(); err != nil {
		return err
	}
	if discountValue <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("discountValue",
			fmt.Errorf("%d is not greater than 0", discountValue))
	}
	if discountType == DiscountPercentage && discountValue > 100 {
		return errs.NewValueIsOutOfRangeError("discountValue", discountValue, 1, 100)
	}
	c.discountType = discountType
	c.discountValue = discountValue
	return nil
}

func (c *Coupon) setLimits(minOrderCents, maxDiscountCents int64, usageLimit *int64, perUserLimit int64) error {
	if minOrderCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minOrderAmountCents",
			fmt.Errorf("%d is negative", minOrderCents))
	}
	if maxDiscountCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxDiscountCents",
			fmt.Errorf("%d is negative", maxDiscountCents))
	}
	if usageLimit != nil && *usageLimit < 1 {
		return errs.NewValueIsInvalidErrorWithCause("usageLimit",
			fmt.Errorf("%d is not greater than 0", *usageLimit))
	}
	if perUserLimit < 1 {
		return errs.NewValueIsInvalidErrorWithCause("perUserLimit",
			fmt.Errorf("%d is not greater than 0", perUserLimit))
	}
	c.minOrderCents = minOrderCents
	c.maxDiscountCents = maxDiscountCents
	c.usageLimit = usageLimit
	c.perUserLimit = perUserLimit
	return nil
}

func (c *Coupon) setWindow(startsAt, expiresAt time.Time) error {
	if startsAt.IsZero() || expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("activeWindow")
	}
	if !expiresAt.After(startsAt) {
		return errs.NewValueIsInvalidErrorWithCause("activeWindow",
			fmt.Errorf("expiresAt %s is not after startsAt %s", expiresAt, startsAt))
	}
	c.startsAt = startsAt
	c.expiresAt = expiresAt
	return nil
}
