package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrRiderAlreadyAssigned is returned when assigning a rider to an order
	// that already has one.
	ErrRiderAlreadyAssigned = errors.New("order already has an assigned rider")
)

// SystemActorID identifies system-initiated mutations in the status history:
// payment-outcome transitions and scheduled auto-completion. It is a fixed,
// well-known identifier, never a real user.
var SystemActorID = func() kernel.UUID {
	id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	return id
}()

// Pricing holds the monetary breakdown of an order in integer cents.
// The invariant TotalCents = SubtotalCents - DiscountCents + DeliveryFeeCents
// + TaxCents must hold whenever the order is readable, and the total is never
// negative.
type Pricing struct {
	SubtotalCents    int64
	DiscountCents    int64
	DeliveryFeeCents int64
	TaxCents         int64
	TotalCents       int64
}

// Validate checks the monetary invariant and that no component is negative.
func (p Pricing) Validate() error {
	if p.SubtotalCents < 0 || p.DiscountCents < 0 || p.DeliveryFeeCents < 0 || p.TaxCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("negative component in %+v", p))
	}
	if p.TotalCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("total %d is negative", p.TotalCents))
	}
	if p.TotalCents != p.SubtotalCents-p.DiscountCents+p.DeliveryFeeCents+p.TaxCents {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("total %d does not equal subtotal %d - discount %d + delivery fee %d + tax %d",
				p.TotalCents, p.SubtotalCents, p.DiscountCents, p.DeliveryFeeCents, p.TaxCents))
	}
	return nil
}

// Order is the aggregate root for one customer purchase and its delivery
// lifecycle. It owns:
//   - identity: an opaque id and a human-facing order number
//   - parties: customer, restaurant, and (once assigned) rider, all as
//     identifiers rather than embedded entities
//   - line items with prices captured at order time
//   - the monetary breakdown (integer cents, see Pricing)
//   - the lifecycle status with its append-only history
//   - an independent payment status
//   - a monotonically increasing version for optimistic concurrency
//
// Invariants:
//   - the Pricing invariant holds at every readable point
//   - status only changes along the lifecycle graph, through TransitionTo
//   - exactly one history entry per accepted transition
//   - cancellation metadata is set only together, only on the move into Cancelled
//   - every accepted mutation increments the version exactly once
//
// Orders use private fields and can only be created through NewOrder (fresh
// orders) or RestoreOrder (reconstruction from persistence).
type Order struct {
	id           kernel.UUID
	orderNumber  kernel.OrderNumber
	customerID   kernel.UUID
	restaurantID kernel.UUID
	riderID      *kernel.UUID

	items      []Item
	pricing    Pricing
	couponCode string

	status        Status
	history       []StatusChange
	paymentStatus PaymentStatus

	scheduledTime         *time.Time
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time

	cancellationReason string
	cancelledAt        *time.Time
	cancelledBy        *kernel.UUID

	version int64

	isConstructed bool
}

// NewOrder creates a fresh order in Created status with a seeded history
// entry, PaymentPending, and version 1. The pricing breakdown must already be
// computed (by the pricing engine) from the catalog snapshot captured in items.
func NewOrder(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	pricing Pricing,
	couponCode string,
	scheduledTime *time.Time,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		paymentStatus: PaymentPending,
		couponCode:    couponCode,
		scheduledTime: scheduledTime,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	created, err := NewStatusChange(Created, now, customerID, "")
	if err != nil {
		return nil, err
	}
	o.history = []StatusChange{created}

	return o, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// order aggregate. All fields are required unless marked optional.
type RestoreOrderParams struct {
	ID           kernel.UUID
	OrderNumber  kernel.OrderNumber
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	RiderID      *kernel.UUID // optional, absent until assigned

	Items      []Item
	Pricing    Pricing
	CouponCode string

	Status        Status
	History       []StatusChange
	PaymentStatus PaymentStatus

	ScheduledTime         *time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time

	CancellationReason string
	CancelledAt        *time.Time
	CancelledBy        *kernel.UUID

	Version int64
}

// RestoreOrder reconstructs an order aggregate from persistence,
// re-validating every invariant so corrupt rows never become live aggregates.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		riderID:               params.RiderID,
		couponCode:            params.CouponCode,
		scheduledTime:         params.ScheduledTime,
		estimatedDeliveryTime: params.EstimatedDeliveryTime,
		actualDeliveryTime:    params.ActualDeliveryTime,
		cancellationReason:    params.CancellationReason,
		cancelledAt:           params.CancelledAt,
		cancelledBy:           params.CancelledBy,
		history:               params.History,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setOrderNumber(params.OrderNumber),
		o.setCustomerID(params.CustomerID),
		o.setRestaurantID(params.RestaurantID),
		o.setItems(params.Items),
		o.setPricing(params.Pricing),
		o.setStatus(params.Status),
		o.setPaymentStatus(params.PaymentStatus),
		o.setVersion(params.Version),
	); err != nil {
		return nil, err
	}

	if err := o.validateCancellationMetadata(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed and that its
// core invariants hold. Called when reconstructing orders from persistence
// and before persisting mutations.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	if err := o.pricing.Validate(); err != nil {
		return err
	}
	return o.validateCancellationMetadata()
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() kernel.OrderNumber {
	return o.orderNumber
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the identifier of the restaurant the order was placed with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// RiderID returns the assigned rider's identifier, or nil if none is assigned.
func (o *Order) RiderID() *kernel.UUID {
	return copyUUID(o.riderID)
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Pricing returns the monetary breakdown of the order.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// CouponCode returns the redeemed coupon code, or "" if none was applied.
func (o *Order) CouponCode() string {
	return o.couponCode
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history, oldest first.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// PaymentStatus returns the current payment status of the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ScheduledTime returns the requested delivery time, or nil for as-soon-as-possible.
func (o *Order) ScheduledTime() *time.Time {
	return copyTime(o.scheduledTime)
}

// EstimatedDeliveryTime returns the current delivery estimate, or nil if none is set.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return copyTime(o.estimatedDeliveryTime)
}

// ActualDeliveryTime returns when the order was delivered, or nil before delivery.
func (o *Order) ActualDeliveryTime() *time.Time {
	return copyTime(o.actualDeliveryTime)
}

// CancellationReason returns why the order was cancelled, or "" if it was not.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CancelledAt returns when the order was cancelled, or nil if it was not.
func (o *Order) CancelledAt() *time.Time {
	return copyTime(o.cancelledAt)
}

// CancelledBy returns who cancelled the order, or nil if it was not cancelled.
func (o *Order) CancelledBy() *kernel.UUID {
	return copyUUID(o.cancelledBy)
}

// Getters hand out copies of pointer-typed state so callers cannot mutate
// the aggregate past its setters.

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Version returns the optimistic-concurrency version of the aggregate.
// It increases by exactly one on every accepted mutation.
func (o *Order) Version() int64 {
	return o.version
}

// TransitionTo moves the order into target if the lifecycle graph allows it,
// applying the state-specific side effects, appending one history entry, and
// bumping the version. Authorization is the transition service's concern:
// this method only enforces the graph and the coupled-field invariants.
//
// Side effects:
//   - Delivered sets actualDeliveryTime to now
//   - PickedUp sets a default estimatedDeliveryTime (now plus the OnTheWay
//     estimate) only if no estimate is set yet
//   - Cancelled requires a non-empty reason and records reason, cancelledAt,
//     and cancelledBy together with the status change
//
// On error the aggregate is unchanged.
func (o *Order) TransitionTo(target Status, actorID kernel.UUID, notes, cancellationReason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}
	if target == Cancelled && cancellationReason == "" {
		return errs.NewValueIsRequiredError("cancellationReason")
	}

	entry, err := NewStatusChange(target, now, actorID, notes)
	if err != nil {
		return err
	}

	switch target {
	case Delivered:
		deliveredAt := now
		o.actualDeliveryTime = &deliveredAt
	case PickedUp:
		if o.estimatedDeliveryTime == nil {
			estimate := now.Add(time.Duration(OnTheWay.EstimatedMinutes()) * time.Minute)
			o.estimatedDeliveryTime = &estimate
		}
	case Cancelled:
		cancelledAt := now
		cancelledBy := actorID
		o.cancellationReason = cancellationReason
		o.cancelledAt = &cancelledAt
		o.cancelledBy = &cancelledBy
	}

	o.status = target
	o.history = append(o.history, entry)
	o.version++
	return nil
}

// ApplyPaymentOutcome applies a payment-gateway outcome to the order.
// It performs the single constrained transition the payment collaborator is
// allowed: from Created into AcceptedByRestaurant (payment paid) on success,
// or into Failed (payment failed) on failure. The payment status changes
// together with the lifecycle status, recorded against SystemActorID.
//
// Orders no longer in Created reject the outcome with InvalidTransitionError.
func (o *Order) ApplyPaymentOutcome(succeeded bool, failureReason string, now time.Time) error {
	target := AcceptedByRestaurant
	notes := "payment confirmed"
	if !succeeded {
		target = Failed
		// Gateways do not always report why a charge failed.
		notes = "payment failed"
		if failureReason != "" {
			notes = failureReason
		}
	}

	if o.status != Created {
		return NewInvalidTransitionError(o.status, target)
	}

	if err := o.TransitionTo(target, SystemActorID, notes, "", now); err != nil {
		return err
	}

	if succeeded {
		o.paymentStatus = PaymentPaid
	} else {
		o.paymentStatus = PaymentFailed
	}
	return nil
}

// AssignRider assigns a delivery rider to the order. Assignment is only
// allowed while the restaurant still holds the order (accepted, preparing, or
// ready for pickup) and no rider is assigned yet. Assignment is a mutation
// (it bumps the version) but not a status change, so no history entry is written.
func (o *Order) AssignRider(riderID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID != nil {
		return ErrRiderAlreadyAssigned
	}

	switch o.status {
	case AcceptedByRestaurant, Preparing, ReadyForPickup:
		// assignable
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign a rider", o.status))
	}

	o.riderID = &riderID
	o.version++
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(n kernel.OrderNumber) error {
	if err := n.Validate(); err != nil {
		return err
	}
	o.orderNumber = n
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a positive version", version))
	}
	o.version = version
	return nil
}

// validateCancellationMetadata enforces that reason, cancelledAt, and
// cancelledBy are set together, and only on cancelled orders.
func (o *Order) validateCancellationMetadata() error {
	cancelled := o.status == Cancelled
	hasMetadata := o.cancellationReason != "" && o.cancelledAt != nil && o.cancelledBy != nil
	hasAnyMetadata := o.cancellationReason != "" || o.cancelledAt != nil || o.cancelledBy != nil

	if cancelled && !hasMetadata {
		return errs.NewValueIsRequiredError("cancellation metadata")
	}
	if !cancelled && hasAnyMetadata {
		return errs.NewValueIsInvalidErrorWithCause("cancellation metadata",
			errors.New("set on an order that is not cancelled"))
	}
	return nil
}
