package http

import "time"

// Error is the uniform error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
// The customer placing the order is identified by the actor headers, never
// by the body.
type PlaceOrderRequest struct {
	RestaurantID  string             `json:"restaurant_id"`
	Items         []OrderItemRequest `json:"items"`
	CouponCode    string             `json:"coupon_code,omitempty"`
	ScheduledTime *time.Time         `json:"scheduled_time,omitempty"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

// PlaceOrderResponse confirms a placed order.
type PlaceOrderResponse struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Pricing     PricingResponse `json:"pricing"`
}

// PricingResponse is the monetary breakdown of an order in integer cents.
type PricingResponse struct {
	SubtotalCents    int64 `json:"subtotal_cents"`
	DiscountCents    int64 `json:"discount_cents"`
	DeliveryFeeCents int64 `json:"delivery_fee_cents"`
	TaxCents         int64 `json:"tax_cents"`
	TotalCents       int64 `json:"total_cents"`
}

// ChangeOrderStatusRequest is the body of PATCH /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	TargetStatus       string `json:"target_status"`
	ExpectedVersion    int64  `json:"expected_version"`
	Notes              string `json:"notes,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// AssignRiderRequest is the body of POST /api/v1/orders/:id/rider.
type AssignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

// PaymentOutcomeRequest is the body of POST /api/v1/payments/outcome,
// the callback surface for the payment collaborator.
type PaymentOutcomeRequest struct {
	OrderID       string `json:"order_id"`
	Succeeded     bool   `json:"succeeded"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// OrderStatusResponse is the tracking view returned by
// GET /api/v1/orders/:id/status.
type OrderStatusResponse struct {
	OrderID               string     `json:"order_id"`
	OrderNumber           string     `json:"order_number"`
	Status                string     `json:"status"`
	Description           string     `json:"description"`
	IsTerminal            bool       `json:"is_terminal"`
	NextValidStates       []string   `json:"next_valid_states"`
	EstimatedMinutes      int        `json:"estimated_minutes"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actual_delivery_time,omitempty"`
	Version               int64      `json:"version"`
}
