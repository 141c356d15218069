package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// ParcelInput is the sender-supplied part of a new parcel. Cost is in whole
// currency units.
type ParcelInput struct {
	ParcelName      string
	SenderName      string
	SenderEmail     string
	ReceiverName    string
	ReceiverAddress string
	Cost            int64
	Currency        string
}

// CreateParcelCommand registers a new unpaid parcel.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(ParcelInput{ParcelName: "Box A", SenderEmail: "a@x.com", Cost: 500, Currency: "usd"})
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Println(result.Parcel.TrackingID()) // PRCL-20240115-AB12CD
type CreateParcelCommand struct {
	details parcel.Details
	cost    kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(in ParcelInput) (CreateParcelCommand, error) {
	details, detailsErr := parcel.NewDetails(in.ParcelName, in.SenderName, in.SenderEmail, in.ReceiverName, in.ReceiverAddress)

	var costErr error
	if in.Cost <= 0 {
		costErr = errs.NewValueIsOutOfRangeError("cost", in.Cost, 1, "unbounded")
	}
	cost, moneyErr := kernel.NewMoneyFromMajor(in.Cost, in.Currency)

	if err := errors.Join(detailsErr, costErr, moneyErr); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{details: details, cost: cost, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) Details() parcel.Details { return c.details }
func (c CreateParcelCommand) Cost() kernel.Money      { return c.cost }
