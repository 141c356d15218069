package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateCheckoutCommandIsNotConstructed = errors.New(
	"CreateCheckoutCommand must be created via NewCreateCheckoutCommand constructor",
)

// CreateCheckoutCommand opens a hosted payment page for an unpaid parcel.
type CreateCheckoutCommand struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateCheckoutCommand(parcelID kernel.UUID) (CreateCheckoutCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return CreateCheckoutCommand{}, err
	}
	return CreateCheckoutCommand{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCreateCheckoutCommandIsNotConstructed)
}

func (c CreateCheckoutCommand) ParcelID() kernel.UUID { return c.parcelID }
