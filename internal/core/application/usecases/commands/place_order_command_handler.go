package commands

import (
	"context"
	"errors"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// PlaceOrderResult reports the outcome of a successful order placement:
// the identifiers the caller needs and the priced breakdown.
type PlaceOrderResult struct {
	OrderID     kernel.UUID
	OrderNumber kernel.OrderNumber
	Status      order.Status
	Pricing     order.Pricing
}

// PlaceOrderCommandHandler handles the business logic for order placement.
// Resolves requested items against the catalog, validates and applies the
// coupon, prices the order, and persists everything in one transaction so
// the order insert and the coupon usage increment commit together.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, catalog, pricingEngine)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// result.OrderNumber is ready to show to the customer
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.CatalogClient
	pricing    services.PricingEngine
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires a UoWFactory for transactional persistence, a CatalogClient for
// item resolution, and a PricingEngine for the monetary breakdown.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	catalog ports.CatalogClient,
	pricing services.PricingEngine,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
	}
}

// Handle processes the order placement command.
//
// Item resolution is all-or-nothing: any requested item the catalog does not
// know, or knows but marks unavailable, rejects the whole order. A supplied
// coupon must qualify; a coupon that cannot be redeemed is an error, never a
// silent skip. The per-user redemption limit counts the customer's previous
// non-cancelled, non-failed orders with the same code.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	resolved, err := h.resolveItems(ctx, cmd)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	policy, err := h.catalog.DeliveryFeePolicy(ctx, cmd.RestaurantID())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	var appliedCoupon *coupon.Coupon
	if cmd.CouponCode() != "" {
		appliedCoupon, err = h.loadCoupon(ctx, uow, orderRepo, cmd)
		if err != nil {
			return PlaceOrderResult{}, err
		}
	}

	now := time.Now().UTC()
	pricing, err := h.pricing.Quote(resolved, policy, appliedCoupon, now)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	items := make([]order.Item, 0, len(resolved))
	for _, r := range resolved {
		item, itemErr := order.NewItem(r.CatalogItemID, r.Name, r.UnitPriceCents, r.Quantity, r.Notes)
		if itemErr != nil {
			return PlaceOrderResult{}, itemErr
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		kernel.NewOrderNumber(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		items,
		pricing,
		cmd.CouponCode(),
		cmd.ScheduledTime(),
		now,
	)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if appliedCoupon != nil {
		if err = uow.CouponRepository().IncrementUsage(ctx, appliedCoupon.Code()); err != nil {
			return PlaceOrderResult{}, err
		}
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	return PlaceOrderResult{
		OrderID:     newOrder.ID(),
		OrderNumber: newOrder.OrderNumber(),
		Status:      newOrder.Status(),
		Pricing:     newOrder.Pricing(),
	}, nil
}

// resolveItems merges the requested lines with the catalog snapshot.
// Identifiers the catalog does not return come back with Available=false so
// the pricing engine rejects them alongside known-but-unavailable items.
func (h *PlaceOrderCommandHandler) resolveItems(ctx context.Context, cmd PlaceOrderCommand) ([]services.ResolvedItem, error) {
	requests := cmd.Items()
	ids := make([]kernel.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.CatalogItemID
	}

	catalogItems, err := h.catalog.ResolveItems(ctx, cmd.RestaurantID(), ids)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[kernel.UUID]services.CatalogItem, len(catalogItems))
	for _, ci := range catalogItems {
		snapshot[ci.ID] = ci
	}

	resolved := make([]services.ResolvedItem, len(requests))
	for i, r := range requests {
		ci, known := snapshot[r.CatalogItemID]
		resolved[i] = services.ResolvedItem{
			CatalogItemID:  r.CatalogItemID,
			Name:           ci.Name,
			UnitPriceCents: ci.UnitPriceCents,
			Quantity:       r.Quantity,
			Notes:          r.Notes,
			Available:      known && ci.Available,
		}
	}
	return resolved, nil
}

// loadCoupon fetches the coupon and enforces the per-user redemption limit.
// An unknown code surfaces as CouponInvalidError with ReasonNotFound rather
// than a bare not-found, so callers see one coupon error family.
func (h *PlaceOrderCommandHandler) loadCoupon(
	ctx context.Context,
	uow UoW,
	orderRepo ports.OrderRepository,
	cmd PlaceOrderCommand,
) (*coupon.Coupon, error) {
	code := cmd.CouponCode()

	c, err := uow.CouponRepository().GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, coupon.NewCouponInvalidError(code, coupon.ReasonNotFound)
		}
		return nil, err
	}

	if c.PerUserLimit() > 0 {
		redemptions, err := orderRepo.CountCouponRedemptions(ctx, cmd.CustomerID(), code)
		if err != nil {
			return nil, err
		}
		if redemptions >= c.PerUserLimit() {
			return nil, coupon.NewCouponInvalidError(code, coupon.ReasonPerUserLimitExceeded)
		}
	}

	return c, nil
}
