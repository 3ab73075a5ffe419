// Package menurepo implements the catalog port over the restaurant and menu
// tables. The core never mutates these tables; it only reads price and
// availability snapshots and the restaurant configuration.
package menurepo

import (
	"github.com/google/uuid"
)

// RestaurantDTO represents the restaurant configuration the order core needs:
// who owns it and how its delivery fee is computed.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	Name    string    `gorm:"size:255"`

	BaseDeliveryFeeCents   int64
	DistanceTieredDelivery bool
	DeliveryDistanceKm     float64
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO represents one orderable menu item with its current price and
// availability.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string    `gorm:"size:255"`

	UnitPriceCents int64
	Available      bool
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}
