package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/pkg/errs"
)

// AssignRiderResult describes every write of an assignment. PreviousRider is
// set when the parcel moved away from another rider.
type AssignRiderResult struct {
	Parcel        services.ParcelUpdateResult
	Rider         services.RiderUpdateResult
	PreviousRider *services.RiderUpdateResult
	LedgerEntry   tracking.Entry
}

type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	workload   *services.RiderWorkloadManager
	ledger     *services.TrackingLedger
}

func NewAssignRiderCommandHandler(
	uowFactory UoWFactory,
	workload *services.RiderWorkloadManager,
	ledger *services.TrackingLedger,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{uowFactory: uowFactory, workload: workload, ledger: ledger}
}

// Handle validates the parcel and both riders before the first write, then
// applies parcel.update, rider reservation, release of the previous rider and
// the driver_assigned entry in that order.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) (AssignRiderResult, error) {
	if err := command.Validate(); err != nil {
		return AssignRiderResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return AssignRiderResult{}, err
	}
	defer release()

	p, err := uow.ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return AssignRiderResult{}, err
	}
	r, err := uow.RiderRepository().GetForUpdate(ctx, command.RiderID())
	if err != nil {
		return AssignRiderResult{}, err
	}

	if e := command.RiderEmail(); e != nil && !e.IsEqual(r.Email()) {
		return AssignRiderResult{}, errs.NewValueIsInvalidErrorWithCause(
			"riderEmail",
			errors.New(e.String()+" does not belong to rider "+r.ID().String()),
		)
	}

	// Reassigning the parcel to its current rider keeps that rider's reservation.
	previous := p.Rider()
	sameRider := previous != nil && previous.RiderID().IsEqual(r.ID())
	if sameRider {
		if !r.IsApproved() {
			return AssignRiderResult{}, errs.NewConflictError("rider "+r.ID().String(), "not approved (status "+r.Status().String()+")")
		}
	} else if err = r.ValidateCanTakeDelivery(); err != nil {
		return AssignRiderResult{}, err
	}

	var previousRider *rider.Rider
	if previous != nil && !sameRider {
		previousRider, err = uow.RiderRepository().GetForUpdate(ctx, previous.RiderID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return AssignRiderResult{}, err
		}
	}

	name := command.RiderName()
	if name == "" {
		name = r.Name()
	}
	assignment, err := parcel.NewRiderAssignment(r.ID(), r.Email(), name)
	if err != nil {
		return AssignRiderResult{}, err
	}
	if err = p.AssignRider(assignment); err != nil {
		return AssignRiderResult{}, err
	}

	steps := services.NewSaga("assign")

	if err = steps.Step(services.StepParcelUpdate, func() error {
		return uow.ParcelRepository().Update(ctx, p)
	}); err != nil {
		return AssignRiderResult{}, steps.Abort(ctx, uow, err)
	}

	result := AssignRiderResult{Parcel: services.NewParcelUpdateResult(p, true)}

	if sameRider {
		result.Rider = services.NewRiderUpdateResult(r, false)
	} else if result.Rider, err = h.workload.Reserve(ctx, steps, uow, r); err != nil {
		return AssignRiderResult{}, steps.Abort(ctx, uow, err)
	}

	if previousRider != nil {
		freed, releaseErr := h.workload.Release(ctx, steps, uow, previousRider)
		if releaseErr != nil {
			return AssignRiderResult{}, steps.Abort(ctx, uow, releaseErr)
		}
		result.PreviousRider = &freed
	}

	if result.LedgerEntry, err = h.ledger.Append(ctx, steps, uow.TrackingRepository(), p.TrackingID(), tracking.DriverAssigned); err != nil {
		return AssignRiderResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commit(ctx, uow, steps); err != nil {
		return AssignRiderResult{}, err
	}
	return result, nil
}
