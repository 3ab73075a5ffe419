package kernel

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not created
// through NewOrderNumber or OrderNumberFromString.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via NewOrderNumber or OrderNumberFromString",
)

const orderNumberPrefix = "ORD"

// OrderNumber is the human-facing unique identifier of an order, generated
// once at creation and never reused. The format is
// "ORD-<base36 unix milliseconds>-<6 uppercase hex digits>": the timestamp
// prefix keeps numbers roughly sortable and the random suffix makes collisions
// within the same millisecond practically impossible. Uniqueness is ultimately
// enforced by the storage layer.
//
// The zero value is invalid and fails Validate.
type OrderNumber struct {
	value string
}

// NewOrderNumber generates a fresh order number from the current time and
// three bytes of cryptographic randomness.
func NewOrderNumber() OrderNumber {
	suffix := make([]byte, 3)
	// rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(suffix)

	value := fmt.Sprintf("%s-%s-%s",
		orderNumberPrefix,
		strconv.FormatInt(time.Now().UnixMilli(), 36),
		strings.ToUpper(hex.EncodeToString(suffix)),
	)
	return OrderNumber{value: value}
}

// OrderNumberFromString reconstructs an order number from its stored
// representation. Returns an error if the value does not carry the expected
// "ORD-" prefix or is empty.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if s == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if !strings.HasPrefix(s, orderNumberPrefix+"-") {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q does not start with %q", s, orderNumberPrefix+"-"))
	}
	return OrderNumber{value: s}, nil
}

// String returns the full order number, e.g. "ORD-m1k3q8zr-A3F91B".
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers by value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks that the order number was properly constructed.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
