package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/cenkalti/backoff/v5"
)

// TrackingIDGenerator produces candidate tracking identifiers.
type TrackingIDGenerator interface {
	Generate() (kernel.TrackingID, error)
}

// CreateParcelResult is the stored parcel and its parcel_created entry.
type CreateParcelResult struct {
	Parcel      *parcel.Parcel
	LedgerEntry tracking.Entry
}

// CreateParcelCommandHandler allocates a tracking identifier, stores the
// parcel and appends parcel_created in one transaction. A tracking identifier
// collision on the unique index regenerates the identifier and retries the
// whole transaction, at most attempts times.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	generator  TrackingIDGenerator
	ledger     *services.TrackingLedger
	now        func() time.Time
	attempts   uint
}

func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	generator TrackingIDGenerator,
	ledger *services.TrackingLedger,
	now func() time.Time,
	attempts uint,
) CreateParcelCommandHandler {
	if attempts == 0 {
		attempts = 1
	}
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		ledger:     ledger,
		now:        now,
		attempts:   attempts,
	}
}

func (h CreateParcelCommandHandler) Handle(ctx context.Context, command CreateParcelCommand) (CreateParcelResult, error) {
	if err := command.Validate(); err != nil {
		return CreateParcelResult{}, err
	}

	operation := func() (CreateParcelResult, error) {
		result, err := h.create(ctx, command)
		if err != nil && !errors.Is(err, ports.ErrTrackingIDTaken) {
			return CreateParcelResult{}, backoff.Permanent(err)
		}
		return result, err
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(h.attempts),
	)
	if errors.Is(err, ports.ErrTrackingIDTaken) {
		return CreateParcelResult{}, errs.NewConflictErrorWithCause(
			"parcel",
			fmt.Sprintf("no unused tracking id after %d attempts", h.attempts),
			err,
		)
	}
	return result, err
}

func (h CreateParcelCommandHandler) create(ctx context.Context, command CreateParcelCommand) (CreateParcelResult, error) {
	trackingID, err := h.generator.Generate()
	if err != nil {
		return CreateParcelResult{}, err
	}

	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, command.Details(), command.Cost(), h.now())
	if err != nil {
		return CreateParcelResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return CreateParcelResult{}, err
	}
	defer release()

	steps := services.NewSaga("create")

	if err = steps.Step(services.StepParcelAdd, func() error {
		return uow.ParcelRepository().Add(ctx, p)
	}); err != nil {
		return CreateParcelResult{}, steps.Abort(ctx, uow, err)
	}

	entry, err := h.ledger.Append(ctx, steps, uow.TrackingRepository(), trackingID, tracking.ParcelCreated)
	if err != nil {
		return CreateParcelResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commit(ctx, uow, steps); err != nil {
		return CreateParcelResult{}, err
	}

	return CreateParcelResult{Parcel: p, LedgerEntry: entry}, nil
}
