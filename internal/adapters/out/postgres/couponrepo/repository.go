package couponrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Add saves a new coupon to the database. Used by seeding and operator
// tooling; the order flow never creates coupons.
func (r *GormCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByCode retrieves a coupon by its normalized code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)

	var dto CouponDTO
	err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("code", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementUsage atomically increments the usage counter, guarded by the
// usage limit in the same statement so two racing orders can never push the
// counter past the limit. A NULL limit means unlimited use.
func (r *GormCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	code = coupon.NormalizeCode(code)

	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("code = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", code).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("code = ?", code).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return errs.NewObjectNotFoundError("code", code)
	}

	return coupon.NewCouponInvalidError(code, coupon.ReasonUsageLimitExceeded)
}
