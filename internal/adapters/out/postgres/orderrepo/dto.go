// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and status history live in child tables; the version column
// carries the optimistic-concurrency token.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber  string     `gorm:"size:64;uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	RiderID      *uuid.UUID `gorm:"type:uuid;index"`

	CouponCode string `gorm:"size:64"`

	SubtotalCents    int64
	DiscountCents    int64
	DeliveryFeeCents int64
	TaxCents         int64
	TotalCents       int64

	Status        string `gorm:"size:32;index"`
	PaymentStatus string `gorm:"size:32"`

	ScheduledTime         *time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time

	CancellationReason string
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`

	Version int64

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	History []StatusChangeDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line with the price captured
// at order time.
type OrderItemDTO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	CatalogItemID uuid.UUID `gorm:"type:uuid"`
	Name          string    `gorm:"size:255"`

	UnitPriceCents int64
	Quantity       int
	Notes          string
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO represents one entry of an order's append-only status
// history. Rows are never updated or deleted, only inserted.
type StatusChangeDTO struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Status  string    `gorm:"size:32"`
	At      time.Time
	ActorID uuid.UUID `gorm:"type:uuid"`
	Notes   string
}

// TableName specifies the database table name for status history entries.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// fromDomain converts an order domain aggregate to its database representation,
// including all line items and the full status history.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	var cancelledBy *uuid.UUID
	if id := aggregate.CancelledBy(); id != nil {
		raw := id.Bytes()
		cancelledBy = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			CatalogItemID:  item.CatalogItemID().Bytes(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPriceCents(),
			Quantity:       item.Quantity(),
			Notes:          item.Notes(),
		})
	}

	history := make([]StatusChangeDTO, 0, len(aggregate.History()))
	for _, change := range aggregate.History() {
		history = append(history, statusChangeFromDomain(orderID, change))
	}

	pricing := aggregate.Pricing()
	return OrderDTO{
		ID:           orderID,
		OrderNumber:  aggregate.OrderNumber().String(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		RiderID:      riderID,

		CouponCode: aggregate.CouponCode(),

		SubtotalCents:    pricing.SubtotalCents,
		DiscountCents:    pricing.DiscountCents,
		DeliveryFeeCents: pricing.DeliveryFeeCents,
		TaxCents:         pricing.TaxCents,
		TotalCents:       pricing.TotalCents,

		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),

		ScheduledTime:         aggregate.ScheduledTime(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),

		CancellationReason: aggregate.CancellationReason(),
		CancelledAt:        aggregate.CancelledAt(),
		CancelledBy:        cancelledBy,

		Version: aggregate.Version(),

		Items:   items,
		History: history,
	}
}

func statusChangeFromDomain(orderID uuid.UUID, change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID: orderID,
		Status:  change.Status().String(),
		At:      change.At(),
		ActorID: change.ActorID().Bytes(),
		Notes:   change.Notes(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so every
// invariant is re-validated on the way out of the database.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderNumber, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := optionalUUID(dto.RiderID)
	if err != nil {
		return nil, err
	}

	cancelledBy, err := optionalUUID(dto.CancelledBy)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		catalogItemID, itemErr := kernel.UUIDFromBytes(itemDTO.CatalogItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(
			catalogItemID, itemDTO.Name, itemDTO.UnitPriceCents, itemDTO.Quantity, itemDTO.Notes,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, changeDTO := range dto.History {
		change, changeErr := statusChangeToDomain(changeDTO)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, change)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		OrderNumber:  orderNumber,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		RiderID:      riderID,

		Items: items,
		Pricing: order.Pricing{
			SubtotalCents:    dto.SubtotalCents,
			DiscountCents:    dto.DiscountCents,
			DeliveryFeeCents: dto.DeliveryFeeCents,
			TaxCents:         dto.TaxCents,
			TotalCents:       dto.TotalCents,
		},
		CouponCode: dto.CouponCode,

		Status:        status,
		History:       history,
		PaymentStatus: paymentStatus,

		ScheduledTime:         dto.ScheduledTime,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,

		CancellationReason: dto.CancellationReason,
		CancelledAt:        dto.CancelledAt,
		CancelledBy:        cancelledBy,

		Version: dto.Version,
	})
}

func statusChangeToDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return order.StatusChange{}, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.NewStatusChange(status, dto.At, actorID, dto.Notes)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
