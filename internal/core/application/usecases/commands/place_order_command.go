package commands

import (
	"errors"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemRequest is one requested order line: the catalog item the customer
// wants, how many, and free-text notes for the kitchen. Prices are never
// accepted from the caller; they come from the catalog snapshot at pricing time.
type ItemRequest struct {
	CatalogItemID kernel.UUID
	Quantity      int
	Notes         string
}

// PlaceOrderCommand represents a request to place a new order with a
// restaurant. Carries the requested lines, an optional coupon code, and an
// optional scheduled delivery time.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, restaurantID,
//	    []ItemRequest{{CatalogItemID: pizzaID, Quantity: 2}}, "WELCOME10", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed, total %d cents", result.OrderNumber, result.Pricing.TotalCents)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	restaurantID  kernel.UUID
	items         []ItemRequest
	couponCode    string
	scheduledTime *time.Time

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// The coupon code is normalized; an empty code means no coupon.
// Returns an error if any identifier is invalid, no items are requested,
// or any quantity is not positive.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []ItemRequest,
	couponCode string,
	scheduledTime *time.Time,
) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		couponCode:    coupon.NormalizeCode(couponCode),
		scheduledTime: scheduledTime,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setOrderID(orderID),
		placeCommand.setCustomerID(customerID),
		placeCommand.setRestaurantID(restaurantID),
		placeCommand.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the customer placing the order.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the identifier of the restaurant the order targets.
func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns a copy of the requested order lines.
func (c PlaceOrderCommand) Items() []ItemRequest {
	items := make([]ItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

// CouponCode returns the normalized coupon code, or "" if none was supplied.
func (c PlaceOrderCommand) CouponCode() string {
	return c.couponCode
}

// ScheduledTime returns the requested delivery time, or nil for as soon as possible.
func (c PlaceOrderCommand) ScheduledTime() *time.Time {
	return c.scheduledTime
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.CatalogItemID.Validate(); err != nil {
			return err
		}
		if item.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, 100)
		}
	}

	c.items = items
	return nil
}
