package menurepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// GormCatalogClient implements the CatalogClient port over the restaurant
// and menu tables.
type GormCatalogClient struct {
	db *gorm.DB
}

// NewGormCatalogClient creates a new GORM-backed catalog client.
func NewGormCatalogClient(db *gorm.DB) *GormCatalogClient {
	return &GormCatalogClient{db: db}
}

// ResolveItems returns the current price and availability of the requested
// menu items, scoped to one restaurant. Identifiers the catalog does not
// know are absent from the result.
func (c *GormCatalogClient) ResolveItems(
	ctx context.Context,
	restaurantID kernel.UUID,
	itemIDs []kernel.UUID,
) ([]services.CatalogItem, error) {
	rawIDs := make([]uuid.UUID, len(itemIDs))
	for i, id := range itemIDs {
		rawIDs[i] = id.Bytes()
	}

	var dtos []MenuItemDTO
	err := c.db.WithContext(ctx).
		Find(&dtos, "restaurant_id = ? AND id IN ?", restaurantID.Bytes(), rawIDs).Error
	if err != nil {
		return nil, err
	}

	items := make([]services.CatalogItem, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		items = append(items, services.CatalogItem{
			ID:             id,
			Name:           dto.Name,
			UnitPriceCents: dto.UnitPriceCents,
			Available:      dto.Available,
		})
	}

	return items, nil
}

// DeliveryFeePolicy returns the restaurant's delivery-fee configuration.
func (c *GormCatalogClient) DeliveryFeePolicy(ctx context.Context, restaurantID kernel.UUID) (services.DeliveryFeePolicy, error) {
	dto, err := c.restaurant(ctx, restaurantID)
	if err != nil {
		return services.DeliveryFeePolicy{}, err
	}

	return services.DeliveryFeePolicy{
		BaseFeeCents:   dto.BaseDeliveryFeeCents,
		DistanceTiered: dto.DistanceTieredDelivery,
		DistanceKm:     dto.DeliveryDistanceKm,
	}, nil
}

// RestaurantOwner returns the identifier of the restaurant's owner.
func (c *GormCatalogClient) RestaurantOwner(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error) {
	dto, err := c.restaurant(ctx, restaurantID)
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.OwnerID[:])
}

func (c *GormCatalogClient) restaurant(ctx context.Context, restaurantID kernel.UUID) (RestaurantDTO, error) {
	var dto RestaurantDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ?", restaurantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RestaurantDTO{}, errs.NewObjectNotFoundError("restaurantID", restaurantID)
		}
		return RestaurantDTO{}, err
	}

	return dto, nil
}
