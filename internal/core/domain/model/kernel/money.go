package kernel

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// minorUnitsPerMajor converts whole currency units to the gateway's minor units.
const minorUnitsPerMajor = 100

// Money is an amount in minor units (cents) with an ISO 4217 currency code.
type Money struct {
	minor    int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney builds an amount from minor units.
func NewMoney(minor int64, currency string) (Money, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, "unbounded")
	}

	return Money{minor: minor, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

// NewMoneyFromMajor builds an amount from whole currency units, e.g. 500 usd.
func NewMoneyFromMajor(major int64, currency string) (Money, error) {
	return NewMoney(major*minorUnitsPerMajor, currency)
}

func (m Money) Minor() int64 {
	return m.minor
}

// Major returns the amount in whole currency units.
func (m Money) Major() float64 {
	return float64(m.minor) / minorUnitsPerMajor
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) IsEqual(other Money) bool {
	return m.minor == other.minor && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Major(), strings.ToUpper(m.currency))
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
