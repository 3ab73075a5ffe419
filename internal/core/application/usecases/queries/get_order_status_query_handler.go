package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// GetOrderStatusQueryHandler reads the tracking view of an order from the
// database. The lifecycle metadata (description, terminality, next states,
// estimate) comes from the status model, not from stored columns, so the
// view can never drift from the lifecycle graph.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order tracking queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the tracking query for one order.
// Returns errs.ObjectNotFoundError if no such order exists.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var row struct {
		ID                    uuid.UUID
		OrderNumber           string
		Status                string
		EstimatedDeliveryTime sql.NullTime
		ActualDeliveryTime    sql.NullTime
		Version               int64
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			estimated_delivery_time,
			actual_delivery_time,
			version
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	orderID, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	status, err := order.StatusFromString(row.Status)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	next := status.NextValidStates()
	nextStates := make([]string, len(next))
	for i, s := range next {
		nextStates[i] = s.String()
	}

	return GetOrderStatusQueryResponse{
		OrderID:               orderID,
		OrderNumber:           row.OrderNumber,
		Status:                status.String(),
		Description:           status.Describe(),
		IsTerminal:            status.IsTerminal(),
		NextValidStates:       nextStates,
		EstimatedMinutes:      status.EstimatedMinutes(),
		EstimatedDeliveryTime: nullTimePtr(row.EstimatedDeliveryTime),
		ActualDeliveryTime:    nullTimePtr(row.ActualDeliveryTime),
		Version:               row.Version,
	}, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
