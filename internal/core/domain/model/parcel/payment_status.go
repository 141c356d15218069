package parcel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// PaymentStatus tells whether the parcel's cost has been settled.
type PaymentStatus int

const (
	Unpaid PaymentStatus = iota
	PaymentPaid
)

func (s PaymentStatus) String() string {
	if s == PaymentPaid {
		return "paid"
	}
	return "unpaid"
}

// ParsePaymentStatus restores a stored payment status.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch s {
	case "", "unpaid":
		return Unpaid, nil
	case "paid":
		return PaymentPaid, nil
	default:
		return Unpaid, errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a payment status", s))
	}
}
