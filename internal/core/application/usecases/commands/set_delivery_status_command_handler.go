package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/pkg/errs"
)

// SetDeliveryStatusResult describes the writes of a status change. Rider is
// only set for parcel_delivered with a known rider.
type SetDeliveryStatusResult struct {
	Parcel      services.ParcelUpdateResult
	Rider       *services.RiderUpdateResult
	LedgerEntry tracking.Entry
}

type SetDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	workload   *services.RiderWorkloadManager
	ledger     *services.TrackingLedger
}

func NewSetDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	workload *services.RiderWorkloadManager,
	ledger *services.TrackingLedger,
) SetDeliveryStatusCommandHandler {
	return SetDeliveryStatusCommandHandler{uowFactory: uowFactory, workload: workload, ledger: ledger}
}

func (h SetDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	command SetDeliveryStatusCommand,
) (SetDeliveryStatusResult, error) {
	if err := command.Validate(); err != nil {
		return SetDeliveryStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return SetDeliveryStatusResult{}, err
	}
	defer release()

	p, err := uow.ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return SetDeliveryStatusResult{}, err
	}

	var carrier *rider.Rider
	if command.Status().IsDelivered() {
		if carrier, err = h.deliveringRider(ctx, uow, p, command.RiderID()); err != nil {
			return SetDeliveryStatusResult{}, err
		}
	}

	if err = p.SetDeliveryStatus(command.Status()); err != nil {
		return SetDeliveryStatusResult{}, err
	}

	steps := services.NewSaga("setStatus")

	if err = steps.Step(services.StepParcelUpdate, func() error {
		return uow.ParcelRepository().Update(ctx, p)
	}); err != nil {
		return SetDeliveryStatusResult{}, steps.Abort(ctx, uow, err)
	}

	result := SetDeliveryStatusResult{Parcel: services.NewParcelUpdateResult(p, true)}

	if carrier != nil {
		freed, releaseErr := h.workload.Release(ctx, steps, uow, carrier)
		if releaseErr != nil {
			return SetDeliveryStatusResult{}, steps.Abort(ctx, uow, releaseErr)
		}
		result.Rider = &freed
	}

	if result.LedgerEntry, err = h.ledger.Append(
		ctx, steps, uow.TrackingRepository(), p.TrackingID(), command.Status().Label(),
	); err != nil {
		return SetDeliveryStatusResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commit(ctx, uow, steps); err != nil {
		return SetDeliveryStatusResult{}, err
	}
	return result, nil
}

// deliveringRider loads the rider to release: the one named by the caller or
// else the one recorded on the parcel. Both present must agree. A parcel
// without any rider, or naming a rider that no longer exists, is delivered
// without a release and the result is nil.
func (h SetDeliveryStatusCommandHandler) deliveringRider(
	ctx context.Context,
	uow UoW,
	p *parcel.Parcel,
	explicit *kernel.UUID,
) (*rider.Rider, error) {
	var riderID kernel.UUID
	assigned := p.Rider()
	switch {
	case explicit != nil && assigned != nil && !explicit.IsEqual(assigned.RiderID()):
		return nil, errs.NewConflictError(
			"parcel "+p.TrackingID().String(),
			"assigned to rider "+assigned.RiderID().String()+", not "+explicit.String(),
		)
	case explicit != nil:
		riderID = *explicit
	case assigned != nil:
		riderID = assigned.RiderID()
	default:
		return nil, nil
	}

	carrier, err := uow.RiderRepository().GetForUpdate(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return carrier, err
}
