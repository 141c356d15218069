package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand hands a parcel to a rider. riderEmail and riderName are
// optional: a given email must be the rider's own, a missing name falls back to
// the rider's registered name.
type AssignRiderCommand struct {
	parcelID   kernel.UUID
	riderID    kernel.UUID
	riderEmail *kernel.Email
	riderName  string

	guard guard.ConstructorGuard
}

func NewAssignRiderCommand(parcelID, riderID kernel.UUID, riderEmail, riderName string) (AssignRiderCommand, error) {
	var email *kernel.Email
	var emailErr error
	if strings.TrimSpace(riderEmail) != "" {
		e, err := kernel.NewEmail(riderEmail)
		email, emailErr = &e, err
	}

	if err := errors.Join(parcelID.Validate(), riderID.Validate(), emailErr); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		parcelID:   parcelID,
		riderID:    riderID,
		riderEmail: email,
		riderName:  strings.TrimSpace(riderName),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AssignRiderCommand) RiderID() kernel.UUID  { return c.riderID }
func (c AssignRiderCommand) RiderName() string     { return c.riderName }

// RiderEmail returns nil when the caller did not name one.
func (c AssignRiderCommand) RiderEmail() *kernel.Email { return c.riderEmail }
