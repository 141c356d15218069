package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand settles the checkout session the payer returned from.
type ConfirmPaymentCommand struct {
	sessionID string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(sessionID string) (ConfirmPaymentCommand, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("sessionId")
	}
	return ConfirmPaymentCommand{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) SessionID() string { return c.sessionID }
