// Package user holds platform accounts. Rider approval promotes the account
// registered under the rider's email.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// Role is the account's access level.
type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleRider, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", s))
	}
}

type User struct {
	id          kernel.UUID
	email       kernel.Email
	displayName string
	role        Role
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewUser registers an account with the default role.
func NewUser(id kernel.UUID, email kernel.Email, displayName string, createdAt time.Time) (*User, error) {
	return RestoreUser(id, email, displayName, RoleUser, createdAt)
}

func RestoreUser(id kernel.UUID, email kernel.Email, displayName string, role Role, createdAt time.Time) (*User, error) {
	_, roleErr := ParseRole(string(role))
	var createdAtErr error
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(id.Validate(), email.Validate(), roleErr, createdAtErr); err != nil {
		return nil, err
	}

	return &User{
		id:          id,
		email:       email,
		displayName: strings.TrimSpace(displayName),
		role:        role,
		createdAt:   createdAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Email() kernel.Email  { return u.email }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// PromoteToRider grants the rider role. Admins keep their role.
func (u *User) PromoteToRider() (modified bool) {
	if u.role != RoleUser {
		return false
	}
	u.role = RoleRider
	return true
}
