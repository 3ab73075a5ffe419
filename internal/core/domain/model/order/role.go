package order

import (
	"fmt"

	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// Role is the closed set of actors that may drive an order through its
// lifecycle. It is a tagged enum rather than a free-form string so that the
// authorization gate can match on it exhaustively; adding a role is a
// compile-time-checked change.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the customer who placed the order.
	RoleCustomer

	// RoleRestaurantOwner owns the restaurant the order was placed with.
	RoleRestaurantOwner

	// RoleRider is the delivery rider assigned to the order.
	RoleRider

	// RoleAdmin is a platform operator; always authorized, but still bound
	// by the lifecycle graph.
	RoleAdmin
)

// roleStrings returns the storage/transport representation of every role.
func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:         "unknown",
		RoleCustomer:        "customer",
		RoleRestaurantOwner: "restaurant_owner",
		RoleRider:           "rider",
		RoleAdmin:           "admin",
	}
}

// RoleFromString parses the transport representation of a role.
// Returns an error for unknown values.
func RoleFromString(s string) (Role, error) {
	for role, str := range roleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is a defined actor role.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurantOwner, RoleRider, RoleAdmin:
		return nil
	case RoleUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", int(r)))
	}
}

// String returns the transport name of the role, e.g. "restaurant_owner".
func (r Role) String() string {
	if str, ok := roleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
