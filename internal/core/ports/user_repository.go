package ports

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
)

// ErrEmailTaken is the cause of the conflict returned by Add when an account
// already uses the email.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository stores platform accounts, unique by email.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error

	// GetByEmail returns errs.ObjectNotFoundError when no account uses the email.
	GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error)
}
