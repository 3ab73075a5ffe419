// Package couponrepo provides data transfer objects and mapping functions for
// coupon persistence. The coupon store is read-mostly; the only write the
// core performs is the atomic usage-counter increment during order creation.
package couponrepo

import (
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
)

// CouponDTO represents the database structure for persisting coupons.
// The normalized code is the primary key; lookups always use the
// normalized form.
type CouponDTO struct {
	Code          string `gorm:"primaryKey;size:64"`
	DiscountType  string `gorm:"size:16"`
	DiscountValue int64

	MinOrderCents    int64
	MaxDiscountCents int64
	UsageLimit       *int64
	UsageCount       int64
	PerUserLimit     int64

	StartsAt  time.Time
	ExpiresAt time.Time
	IsActive  bool
}

// TableName specifies the database table name for coupon entities.
func (CouponDTO) TableName() string {
	return "coupons"
}

// fromDomain converts a coupon domain entity to its database representation.
func fromDomain(c *coupon.Coupon) CouponDTO {
	startsAt, expiresAt := c.ActiveWindow()
	return CouponDTO{
		Code:          c.Code(),
		DiscountType:  c.DiscountType().String(),
		DiscountValue: c.DiscountValue(),

		MinOrderCents:    c.MinOrderCents(),
		MaxDiscountCents: c.MaxDiscountCents(),
		UsageLimit:       c.UsageLimit(),
		UsageCount:       c.UsageCount(),
		PerUserLimit:     c.PerUserLimit(),

		StartsAt:  startsAt,
		ExpiresAt: expiresAt,
		IsActive:  c.IsActive(),
	}
}

// toDomain converts a database DTO to a coupon domain entity via
// RestoreCoupon, re-validating on the way out of the database.
func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	discountType, err := coupon.DiscountTypeFromString(dto.DiscountType)
	if err != nil {
		return nil, err
	}

	return coupon.RestoreCoupon(
		dto.Code,
		discountType,
		dto.DiscountValue,
		dto.MinOrderCents,
		dto.MaxDiscountCents,
		dto.UsageLimit,
		dto.UsageCount,
		dto.PerUserLimit,
		dto.StartsAt,
		dto.ExpiresAt,
		dto.IsActive,
	)
}
