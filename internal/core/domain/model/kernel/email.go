package kernel

import (
	"fmt"
	"net/mail"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// ErrEmailIsNotConstructed is returned when validating a zero-value Email.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("Email must be created via NewEmail")

// Email is the identity of senders, riders and user accounts. Addresses are
// stored lower-cased so lookups by identity are case-insensitive.
type Email struct {
	address string
	guard   guard.ConstructorGuard
}

func NewEmail(address string) (Email, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an address", address))
	}

	return Email{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (e Email) String() string {
	return e.address
}

func (e Email) IsEqual(other Email) bool {
	return e.address == other.address
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}
