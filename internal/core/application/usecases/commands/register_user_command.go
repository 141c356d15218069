package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates a platform account unless one already uses the email.
type RegisterUserCommand struct {
	email       kernel.Email
	displayName string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(email, displayName string) (RegisterUserCommand, error) {
	e, err := kernel.NewEmail(email)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{email: e, displayName: strings.TrimSpace(displayName), guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Email() kernel.Email { return c.email }
func (c RegisterUserCommand) DisplayName() string { return c.displayName }
