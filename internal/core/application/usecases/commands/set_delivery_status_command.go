package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrSetDeliveryStatusCommandIsNotConstructed = errors.New(
	"SetDeliveryStatusCommand must be created via NewSetDeliveryStatusCommand constructor",
)

// SetDeliveryStatusCommand applies a free-text delivery status. riderID is
// only consulted for parcel_delivered.
type SetDeliveryStatusCommand struct {
	parcelID kernel.UUID
	status   parcel.DeliveryStatus
	riderID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetDeliveryStatusCommand(parcelID kernel.UUID, status string, riderID *kernel.UUID) (SetDeliveryStatusCommand, error) {
	s, statusErr := parcel.ParseDeliveryStatus(status)

	var riderErr error
	if riderID != nil {
		riderErr = riderID.Validate()
	}

	if err := errors.Join(parcelID.Validate(), statusErr, riderErr); err != nil {
		return SetDeliveryStatusCommand{}, err
	}

	cmd := SetDeliveryStatusCommand{parcelID: parcelID, status: s, guard: guard.NewConstructorGuard()}
	if riderID != nil {
		id := *riderID
		cmd.riderID = &id
	}
	return cmd, nil
}

func (c SetDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryStatusCommandIsNotConstructed)
}

func (c SetDeliveryStatusCommand) ParcelID() kernel.UUID         { return c.parcelID }
func (c SetDeliveryStatusCommand) Status() parcel.DeliveryStatus { return c.status }
func (c SetDeliveryStatusCommand) RiderID() *kernel.UUID         { return c.riderID }
