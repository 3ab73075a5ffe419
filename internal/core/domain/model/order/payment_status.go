package order

import (
	"fmt"

	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// PaymentStatus tracks the payment outcome of an order independently of the
// delivery lifecycle. It is updated by payment-outcome events and never
// inferred from the order status.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no payment outcome has been received yet.
	PaymentPending

	// PaymentProcessing means the payment provider is processing the charge.
	PaymentProcessing

	// PaymentPaid means the charge succeeded.
	PaymentPaid

	// PaymentFailed means the charge failed.
	PaymentFailed

	// PaymentRefunded means a completed charge was returned to the customer.
	PaymentRefunded
)

// paymentStatusStrings returns the storage representation of every payment status.
func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:    "unknown",
		PaymentPending:    "pending",
		PaymentProcessing: "processing",
		PaymentPaid:       "paid",
		PaymentFailed:     "failed",
		PaymentRefunded:   "refunded",
	}
}

// PaymentStatusFromString parses the storage representation of a payment
// status, e.g. "paid".
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range paymentStatusStrings() {
		if str == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is defined.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentProcessing, PaymentPaid, PaymentFailed, PaymentRefunded:
		return nil
	case PaymentUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", int(p)))
	}
}

// String returns the storage name of the payment status, e.g. "paid".
func (p PaymentStatus) String() string {
	if str, ok := paymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
