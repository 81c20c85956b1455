package order

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// PaymentStatus records how much of an order has been paid. Payments are
// external facts settled outside the core: recording one never changes order
// totals or customer debt.
type PaymentStatus string

const (
	// PaymentUnpaid is the initial payment status of every order.
	PaymentUnpaid PaymentStatus = "unpaid"

	// PaymentPartial indicates a partial payment has been received.
	PaymentPartial PaymentStatus = "partial"

	// PaymentPaid indicates the order is fully settled.
	PaymentPaid PaymentStatus = "paid"
)

func validPaymentStatuses() map[PaymentStatus]struct{} {
	return map[PaymentStatus]struct{}{
		PaymentUnpaid:  {},
		PaymentPartial: {},
		PaymentPaid:    {},
	}
}

// PaymentStatusFromString parses a payment status from its wire representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the PaymentStatus value belongs to the closed set.
func (p PaymentStatus) Validate() error {
	if _, ok := validPaymentStatuses()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", string(p)))
	}
	return nil
}

// String returns the wire representation of the payment status.
func (p PaymentStatus) String() string {
	return string(p)
}
