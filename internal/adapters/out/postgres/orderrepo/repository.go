package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its line items and the
// seeded history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a mutated order with a compare-and-swap on the version
// column: the write only lands if the stored version still matches the
// version the aggregate was loaded with. Newly appended history entries are
// inserted in the same transaction; existing entries are never touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version - 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Omit(clause.Associations).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.versionConflict(ctx, dto, loadedVersion)
	}

	if err := r.appendHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// versionConflict distinguishes a lost optimistic-concurrency race from a
// row that does not exist at all.
func (r *GormOrderRepository) versionConflict(ctx context.Context, dto OrderDTO, loadedVersion int64) error {
	var current OrderDTO
	err := r.db.WithContext(ctx).Select("version").First(&current, "id = ?", dto.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("orderID", dto.ID)
		}
		return err
	}

	return errs.NewVersionConflictError("order", loadedVersion, current.Version)
}

// appendHistory inserts only the history entries that are not persisted yet.
// The history is append-only: existing rows are never rewritten.
func (r *GormOrderRepository) appendHistory(ctx context.Context, dto OrderDTO) error {
	var persisted int64
	if err := r.db.WithContext(ctx).
		Model(&StatusChangeDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error; err != nil {
		return err
	}

	if persisted >= int64(len(dto.History)) {
		return nil
	}

	appended := dto.History[persisted:]
	return r.db.WithContext(ctx).Create(&appended).Error
}

// Get retrieves an order by ID with its line items and full history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-facing order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "order_number = ?", number.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all orders in the given lifecycle state.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).Find(&dtos, "status = ?", status.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// CountCouponRedemptions counts the customer's orders that redeemed the
// given code, excluding cancelled and failed orders.
func (r *GormOrderRepository) CountCouponRedemptions(ctx context.Context, customerID kernel.UUID, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("customer_id = ? AND coupon_code = ? AND status NOT IN ?",
			customerID.Bytes(), code,
			[]string{order.Cancelled.String(), order.Failed.String()}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}
