package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error for status transitions that the
// lifecycle graph does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders follow
// the delivery workflow from creation to a terminal outcome:
//
//	created -> accepted_by_restaurant -> preparing -> ready_for_pickup
//	        -> picked_up -> on_the_way -> delivered -> completed
//
// with the absorbing terminal states cancelled and failed reachable from
// several non-terminal states. There is no path that skips states; even
// administrators are bound by the graph.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status; the order awaits restaurant confirmation.
	Created

	// AcceptedByRestaurant indicates the restaurant has accepted the order.
	AcceptedByRestaurant

	// Preparing indicates the restaurant is preparing the order.
	Preparing

	// ReadyForPickup indicates the order awaits pickup by a delivery rider.
	ReadyForPickup

	// PickedUp indicates a rider has collected the order.
	PickedUp

	// OnTheWay indicates the order is in transit to the customer.
	OnTheWay

	// Delivered indicates the order reached the customer.
	Delivered

	// Completed is the successful terminal state.
	Completed

	// Cancelled is the terminal state for orders cancelled before pickup.
	Cancelled

	// Failed is the terminal state for orders that could not be delivered
	// or whose payment failed.
	Failed
)

// statusStrings returns the storage/display representation of every status.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "unknown",
		Created:              "created",
		AcceptedByRestaurant: "accepted_by_restaurant",
		Preparing:            "preparing",
		ReadyForPickup:       "ready_for_pickup",
		PickedUp:             "picked_up",
		OnTheWay:             "on_the_way",
		Delivered:            "delivered",
		Completed:            "completed",
		Cancelled:            "cancelled",
		Failed:               "failed",
	}
}

// validTransitions returns the full lifecycle graph: for each source state the
// set of states an order may move into. Terminal states map to an empty set.
// The map is rebuilt on each call so callers can never mutate the shared table.
func validTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:              {AcceptedByRestaurant, Cancelled, Failed},
		AcceptedByRestaurant: {Preparing, Cancelled},
		Preparing:            {ReadyForPickup, Cancelled},
		ReadyForPickup:       {PickedUp, Cancelled},
		PickedUp:             {OnTheWay, Failed},
		OnTheWay:             {Delivered, Failed},
		Delivered:            {Completed},
		Completed:            {},
		Cancelled:            {},
		Failed:               {},
	}
}

// statusDescriptions returns the human-readable text for every status.
func statusDescriptions() map[Status]string {
	return map[Status]string{
		Created:              "Order has been created and is waiting for restaurant confirmation",
		AcceptedByRestaurant: "Restaurant has accepted the order",
		Preparing:            "Restaurant is preparing your order",
		ReadyForPickup:       "Order is ready for pickup by delivery rider",
		PickedUp:             "Order has been picked up by delivery rider",
		OnTheWay:             "Order is on the way to your location",
		Delivered:            "Order has been delivered",
		Completed:            "Order is completed",
		Cancelled:            "Order has been cancelled",
		Failed:               "Order delivery failed",
	}
}

// statusEstimatedMinutes returns the expected time in minutes an order spends
// in each state. The values only seed a default estimatedDeliveryTime; they
// are not authoritative once an estimate is set.
func statusEstimatedMinutes() map[Status]int {
	return map[Status]int{
		Created:              5,
		AcceptedByRestaurant: 2,
		Preparing:            20,
		ReadyForPickup:       5,
		PickedUp:             2,
		OnTheWay:             15,
		Delivered:            0,
	}
}

// StatusFromString parses the storage representation of a status.
// Returns an error for unknown values, including "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a defined lifecycle state.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the storage/display name of the status, e.g. "on_the_way".
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the lifecycle graph allows moving from s
// into target. Self-loops are never allowed, terminal states allow nothing,
// and unknown states have no outgoing edges.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// NextValidStates returns the set of states an order in state s may move into.
// The result is empty for terminal and unknown states and is safe to mutate.
func (s Status) NextValidStates() []Status {
	allowed := validTransitions()[s]
	result := make([]Status, len(allowed))
	copy(result, allowed)
	return result
}

// IsTerminal reports whether s is an absorbing state with no outgoing edges.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, Cancelled, Failed:
		return true
	default:
		return false
	}
}

// Describe returns the human-readable description of the status.
func (s Status) Describe() string {
	if d, ok := statusDescriptions()[s]; ok {
		return d
	}
	return "Unknown status"
}

// EstimatedMinutes returns the expected time in minutes an order spends in
// state s, or 0 for terminal and unknown states.
func (s Status) EstimatedMinutes() int {
	return statusEstimatedMinutes()[s]
}

// InvalidTransitionError reports a transition request the lifecycle graph
// rejects. It carries the current state and its allowed next states so
// callers can surface what would have been legal.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the rejected
// move from one state to another, capturing the allowed targets of From.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:    from,
		To:      to,
		Allowed: from.NextValidStates(),
	}
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = s.String()
	}
	return fmt.Sprintf("%s: from %s to %s (allowed: %s)",
		ErrInvalidTransition, e.From, e.To, strings.Join(allowed, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
