// Package http exposes the order lifecycle over REST. Handlers translate
// between the wire format and application commands and map domain errors to
// HTTP status codes; they contain no business rules.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/queries"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/coupon"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// Actor identity headers. Authentication is handled upstream; these carry
// the already-authenticated identity into the service.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler     commands.PlaceOrderCommandHandler
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	assignRiderHandler    commands.AssignRiderCommandHandler
	paymentOutcomeHandler commands.ApplyPaymentOutcomeCommandHandler

	getOrderStatusHandler queries.GetOrderStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	paymentOutcomeHandler commands.ApplyPaymentOutcomeCommandHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		changeStatusHandler:   changeStatusHandler,
		assignRiderHandler:    assignRiderHandler,
		paymentOutcomeHandler: paymentOutcomeHandler,
		getOrderStatusHandler: getOrderStatusHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.PlaceOrder)
	v1.GET("/orders/:id/status", s.GetOrderStatus)
	v1.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	v1.POST("/orders/:id/rider", s.AssignRider)
	v1.POST("/payments/outcome", s.ApplyPaymentOutcome)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	customerID, _, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req PlaceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	items := make([]commands.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, itemErr := kernel.UUIDFromString(item.MenuItemID)
		if itemErr != nil {
			return badRequest(ctx, itemErr)
		}
		items = append(items, commands.ItemRequest{
			CatalogItemID: menuItemID,
			Quantity:      item.Quantity,
			Notes:         item.Notes,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), customerID, restaurantID, items, req.CouponCode, req.ScheduledTime,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{
		OrderID:     result.OrderID.String(),
		OrderNumber: result.OrderNumber.String(),
		Status:      result.Status.String(),
		Pricing: PricingResponse{
			SubtotalCents:    result.Pricing.SubtotalCents,
			DiscountCents:    result.Pricing.DiscountCents,
			DeliveryFeeCents: result.Pricing.DeliveryFeeCents,
			TaxCents:         result.Pricing.TaxCents,
			TotalCents:       result.Pricing.TotalCents,
		},
	})
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	targetStatus, err := order.StatusFromString(req.TargetStatus)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, targetStatus, actorID, actorRole,
		req.ExpectedVersion, req.Notes, req.CancellationReason,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignRider handles POST /api/v1/orders/:id/rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AssignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, riderID, actorID, actorRole)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyPaymentOutcome handles POST /api/v1/payments/outcome.
func (s *Server) ApplyPaymentOutcome(ctx echo.Context) error {
	var req PaymentOutcomeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewApplyPaymentOutcomeCommand(orderID, req.Succeeded, req.FailureReason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.paymentOutcomeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID:               status.OrderID.String(),
		OrderNumber:           status.OrderNumber,
		Status:                status.Status,
		Description:           status.Description,
		IsTerminal:            status.IsTerminal,
		NextValidStates:       status.NextValidStates,
		EstimatedMinutes:      status.EstimatedMinutes,
		EstimatedDeliveryTime: status.EstimatedDeliveryTime,
		ActualDeliveryTime:    status.ActualDeliveryTime,
		Version:               status.Version,
	})
}

// actor extracts the authenticated actor identity from the request headers.
func actor(ctx echo.Context) (kernel.UUID, order.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}

	role, err := order.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}

	return actorID, role, nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError maps domain errors to HTTP status codes. Unknown errors are
// reported as 500 without leaking internals.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err, "")
	case errors.Is(err, errs.ErrVersionConflict):
		return errorJSON(ctx, http.StatusConflict, err, "concurrent_modification")
	case errors.Is(err, order.ErrInvalidTransition):
		return errorJSON(ctx, http.StatusBadRequest, err, "invalid_transition")
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(ctx, http.StatusForbidden, err, "unauthorized")
	case errors.Is(err, order.ErrRiderAlreadyAssigned):
		return errorJSON(ctx, http.StatusConflict, err, "rider_already_assigned")
	case errors.Is(err, coupon.ErrCouponInvalid):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err, couponReason(err))
	case errors.Is(err, services.ErrItemUnavailable):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err, "item_unavailable")
	case errors.Is(err, services.ErrPricingInvariantViolation):
		return errorJSON(ctx, http.StatusInternalServerError, err, "pricing_invariant_violation")
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err, "")
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func couponReason(err error) string {
	var invalidErr *coupon.CouponInvalidError
	if errors.As(err, &invalidErr) {
		return "coupon_" + invalidErr.Reason.String()
	}
	return "coupon_invalid"
}

func errorJSON(ctx echo.Context, code int, err error, reason string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
		Reason:  reason,
	})
}
