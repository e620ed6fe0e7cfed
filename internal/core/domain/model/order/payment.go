package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order. It is an axis
// independent from the fulfilment Status: it is updated by the payment
// collaborator and is not governed by the order state machine.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means payment has not been collected yet.
	PaymentPending

	// PaymentPaid means payment was collected.
	PaymentPaid

	// PaymentFailed means payment collection failed.
	PaymentFailed

	// PaymentRefunded means a collected payment was returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// PaymentStatusFromString parses a payment status from its string
// representation.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	for s, str := range getPaymentStatusStrings() {
		if s != PaymentUnknown && str == value {
			return s, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", value))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the lowercase name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
