package commands

import (
	"context"
	"log/slog"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/payment"
)

// RepairSettlementsCommandHandler completes settlements whose payment record
// was written without the parcel update or the parcel_paid entry. Each record
// is repaired in its own transaction; one failure does not stop the batch.
type RepairSettlementsCommandHandler struct {
	uowFactory UoWFactory
	reconciler *services.PaymentReconciler
	logger     *slog.Logger
}

func NewRepairSettlementsCommandHandler(
	uowFactory UoWFactory,
	reconciler *services.PaymentReconciler,
	logger *slog.Logger,
) RepairSettlementsCommandHandler {
	return RepairSettlementsCommandHandler{uowFactory: uowFactory, reconciler: reconciler, logger: logger}
}

// Handle returns the number of repaired records.
func (h RepairSettlementsCommandHandler) Handle(ctx context.Context, limit int) (int, error) {
	records, err := h.uowFactory.Create().PaymentRepository().GetAllUnreconciled(ctx, limit)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, record := range records {
		if err = h.repair(ctx, record); err != nil {
			h.logger.ErrorContext(ctx, "settlement repair failed",
				"transaction_id", record.TransactionID(),
				"tracking_id", record.TrackingID().String(),
				"error", err,
			)
			continue
		}
		repaired++
	}
	return repaired, nil
}

func (h RepairSettlementsCommandHandler) repair(ctx context.Context, record *payment.Record) error {
	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return err
	}
	defer release()

	steps := services.NewSaga("repairSettlement")
	if _, err = h.reconciler.Repair(ctx, steps, uow, record); err != nil {
		return steps.Abort(ctx, uow, err)
	}
	return commitIfWritten(ctx, uow, steps)
}

// RepairRiderWorkloadCommandHandler frees riders left in delivery without an
// undelivered parcel.
type RepairRiderWorkloadCommandHandler struct {
	uowFactory UoWFactory
	workload   *services.RiderWorkloadManager
}

func NewRepairRiderWorkloadCommandHandler(
	uowFactory UoWFactory,
	workload *services.RiderWorkloadManager,
) RepairRiderWorkloadCommandHandler {
	return RepairRiderWorkloadCommandHandler{uowFactory: uowFactory, workload: workload}
}

// Handle returns the riders made available.
func (h RepairRiderWorkloadCommandHandler) Handle(ctx context.Context) ([]services.RiderUpdateResult, error) {
	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return nil, err
	}
	defer release()

	steps := services.NewSaga("repairRiderWorkload")
	released, err := h.workload.ReleaseIdle(ctx, steps, uow)
	if err != nil {
		return nil, steps.Abort(ctx, uow, err)
	}

	if err = commitIfWritten(ctx, uow, steps); err != nil {
		return nil, err
	}
	return released, nil
}
