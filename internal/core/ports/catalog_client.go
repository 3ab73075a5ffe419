package ports

import (
	"context"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
)

// CatalogClient resolves requested items against the external item catalog
// and exposes the restaurant configuration the pricing engine and the
// authorization gate need. Catalog reads may be served from eventually-stale
// snapshots; prices and availability are captured into the order at creation
// and immutable thereafter.
type CatalogClient interface {
	// ResolveItems returns the current price and availability for each of the
	// requested item identifiers, scoped to one restaurant. Identifiers the
	// catalog does not know are simply absent from the result; callers treat
	// them as unavailable.
	ResolveItems(ctx context.Context, restaurantID kernel.UUID, itemIDs []kernel.UUID) ([]services.CatalogItem, error)

	// DeliveryFeePolicy returns the restaurant's configured delivery-fee
	// policy. Returns errs.ObjectNotFoundError for unknown restaurants.
	DeliveryFeePolicy(ctx context.Context, restaurantID kernel.UUID) (services.DeliveryFeePolicy, error)

	// RestaurantOwner returns the identifier of the restaurant's owner, used
	// by the authorization gate's relationship check.
	// Returns errs.ObjectNotFoundError for unknown restaurants.
	RestaurantOwner(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error)
}
