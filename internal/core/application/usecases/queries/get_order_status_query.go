// Package queries contains read-only operations over the order store.
// Query handlers bypass the aggregate layer and read projections straight
// from the database, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the tracking view of one order: where it is
// in the lifecycle, where it can go next, and the delivery estimate.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order status: %w", err)
//	}
//	fmt.Printf("Order is %s: %s\n", status.Status, status.Description)
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's tracking view.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusQueryIsNotConstructed if validation fails.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being tracked.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderStatusQueryResponse is the customer-facing tracking view of an
// order. NextValidStates is empty for terminal orders, and the estimate
// fields are nil once no estimate applies.
type GetOrderStatusQueryResponse struct {
	OrderID               kernel.UUID
	OrderNumber           string
	Status                string
	Description           string
	IsTerminal            bool
	NextValidStates       []string
	EstimatedMinutes      int
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Version               int64
}
