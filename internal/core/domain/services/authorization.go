package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/order"
)

// ErrUnauthorized is the sentinel error for transition requests the
// authorization gate denies.
var ErrUnauthorized = errors.New("actor is not authorized for this transition")

// UnauthorizedError reports a denied transition request: the actor's role,
// the target state, and the roles that would have been allowed to initiate it.
type UnauthorizedError struct {
	Role     order.Role
	Target   order.Status
	Required []order.Role
}

// NewUnauthorizedError creates an UnauthorizedError for the denied request.
func NewUnauthorizedError(role order.Role, target order.Status, required []order.Role) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Target: target, Required: required}
}

func (e *UnauthorizedError) Error() string {
	required := make([]string, len(e.Required))
	for i, r := range e.Required {
		required[i] = r.String()
	}
	return fmt.Sprintf("%s: role %s cannot move an order into %s (requires: %s)",
		ErrUnauthorized, e.Role, e.Target, strings.Join(required, ", "))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// transitionPermissions returns, for each target status, the roles permitted
// to initiate a transition into it. A target with no entry is denied to
// everyone but administrators. The map is rebuilt per call so callers can
// never mutate the shared table.
func transitionPermissions() map[order.Status][]order.Role {
	return map[order.Status][]order.Role{
		order.Created:              {order.RoleCustomer, order.RoleAdmin},
		order.AcceptedByRestaurant: {order.RoleRestaurantOwner, order.RoleAdmin},
		order.Preparing:            {order.RoleRestaurantOwner, order.RoleAdmin},
		order.ReadyForPickup:       {order.RoleRestaurantOwner, order.RoleAdmin},
		order.PickedUp:             {order.RoleRider, order.RoleAdmin},
		order.OnTheWay:             {order.RoleRider, order.RoleAdmin},
		order.Delivered:            {order.RoleRider, order.RoleCustomer, order.RoleAdmin},
		order.Completed:            {order.RoleCustomer, order.RoleAdmin},
		order.Cancelled:            {order.RoleCustomer, order.RoleRestaurantOwner, order.RoleAdmin},
		order.Failed:               {order.RoleRider, order.RoleAdmin},
	}
}

// AuthorizationGate decides whether an actor may drive an order into a target
// status. The policy is a static map from target status to permitted roles,
// plus a relationship check: non-admin actors must be the party the role
// claims (the order's customer, the owner of the order's restaurant, or the
// order's assigned rider).
//
// Administrators bypass the gate entirely, but never the lifecycle graph.
type AuthorizationGate struct{}

// NewAuthorizationGate creates a new AuthorizationGate instance.
func NewAuthorizationGate() AuthorizationGate {
	return AuthorizationGate{}
}

// RequiredRoles returns the roles permitted to initiate a transition into
// target. The result is safe to mutate.
func (g AuthorizationGate) RequiredRoles(target order.Status) []order.Role {
	allowed := transitionPermissions()[target]
	result := make([]order.Role, len(allowed))
	copy(result, allowed)
	return result
}

// CanTransition reports whether the actor may drive o into target.
//
// restaurantOwnerID is the owner of the order's restaurant, resolved by the
// caller at the boundary; it is only consulted for RoleRestaurantOwner.
// A target status with no permission entry is a denial, not a silent allow.
// A rider is denied any rider-gated transition while the order has no
// assigned rider.
func (g AuthorizationGate) CanTransition(
	role order.Role,
	actorID kernel.UUID,
	restaurantOwnerID kernel.UUID,
	o *order.Order,
	target order.Status,
) bool {
	if role == order.RoleAdmin {
		return true
	}

	allowed, ok := transitionPermissions()[target]
	if !ok {
		return false
	}

	permitted := false
	for _, r := range allowed {
		if r == role {
			permitted = true
			break
		}
	}
	if !permitted {
		return false
	}

	switch role {
	case order.RoleCustomer:
		return actorID.IsEqual(o.CustomerID())
	case order.RoleRestaurantOwner:
		return restaurantOwnerID.Validate() == nil && actorID.IsEqual(restaurantOwnerID)
	case order.RoleRider:
		riderID := o.RiderID()
		return riderID != nil && actorID.IsEqual(*riderID)
	case order.RoleAdmin, order.RoleUnknown:
		fallthrough
	default:
		return false
	}
}
