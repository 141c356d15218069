// Package orchestrator exposes the parcel lifecycle to inbound adapters. Every
// operation runs its command or query handler and records the outcome in logs
// and metrics; the handlers own validation and transactions.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/metrics"
	"parcelhub/internal/pkg/errs"
)

// Handlers are the use cases behind the orchestrator.
type Handlers struct {
	CreateParcel      commands.CreateParcelCommandHandler
	AssignRider       commands.AssignRiderCommandHandler
	SetDeliveryStatus commands.SetDeliveryStatusCommandHandler
	ConfirmPayment    commands.ConfirmPaymentCommandHandler
	CreateCheckout    commands.CreateCheckoutCommandHandler
	RegisterRider     commands.RegisterRiderCommandHandler
	RiderDecision     commands.RiderDecisionCommandHandler
	SetWorkStatus     commands.SetWorkStatusCommandHandler
	RegisterUser      commands.RegisterUserCommandHandler

	TrackingHistory  queries.GetTrackingHistoryQueryHandler
	DeliveriesPerDay queries.GetDeliveriesPerDayQueryHandler
	GetParcel        queries.GetParcelQueryHandler
	GetRider         queries.GetRiderQueryHandler
}

// ParcelLifecycleOrchestrator drives every parcel state transition.
type ParcelLifecycleOrchestrator struct {
	h      Handlers
	logger *slog.Logger
}

func New(h Handlers, logger *slog.Logger) *ParcelLifecycleOrchestrator {
	return &ParcelLifecycleOrchestrator{h: h, logger: logger.With("component", "parcel_lifecycle_orchestrator")}
}

func (o *ParcelLifecycleOrchestrator) Create(
	ctx context.Context,
	cmd commands.CreateParcelCommand,
) (commands.CreateParcelResult, error) {
	return run(ctx, o, "create", func() (commands.CreateParcelResult, error) {
		result, err := o.h.CreateParcel.Handle(ctx, cmd)
		if err == nil {
			o.logger.InfoContext(ctx, "parcel created",
				"parcel_id", result.Parcel.ID().String(),
				"tracking_id", result.Parcel.TrackingID().String(),
			)
		}
		return result, err
	})
}

func (o *ParcelLifecycleOrchestrator) Assign(
	ctx context.Context,
	cmd commands.AssignRiderCommand,
) (commands.AssignRiderResult, error) {
	return run(ctx, o, "assign", func() (commands.AssignRiderResult, error) {
		return o.h.AssignRider.Handle(ctx, cmd)
	})
}

func (o *ParcelLifecycleOrchestrator) SetStatus(
	ctx context.Context,
	cmd commands.SetDeliveryStatusCommand,
) (commands.SetDeliveryStatusResult, error) {
	return run(ctx, o, "setStatus", func() (commands.SetDeliveryStatusResult, error) {
		return o.h.SetDeliveryStatus.Handle(ctx, cmd)
	})
}

func (o *ParcelLifecycleOrchestrator) ConfirmPayment(
	ctx context.Context,
	cmd commands.ConfirmPaymentCommand,
) (services.PaymentConfirmationResult, error) {
	return run(ctx, o, "confirmPayment", func() (services.PaymentConfirmationResult, error) {
		result, err := o.h.ConfirmPayment.Handle(ctx, cmd)
		if err != nil {
			return result, err
		}
		switch {
		case !result.Success:
			metrics.SettlementsTotal.WithLabelValues("unpaid").Inc()
		case result.AlreadySettled:
			metrics.SettlementsTotal.WithLabelValues("already_settled").Inc()
		default:
			metrics.SettlementsTotal.WithLabelValues("settled").Inc()
		}
		return result, nil
	})
}

func (o *ParcelLifecycleOrchestrator) CreateCheckout(
	ctx context.Context,
	cmd commands.CreateCheckoutCommand,
) (ports.CheckoutSession, error) {
	return run(ctx, o, "createCheckout", func() (ports.CheckoutSession, error) {
		return o.h.CreateCheckout.Handle(ctx, cmd)
	})
}

func (o *ParcelLifecycleOrchestrator) History(
	ctx context.Context,
	query queries.GetTrackingHistoryQuery,
) ([]queries.TrackingEntryResponse, error) {
	return run(ctx, o, "history", func() ([]queries.TrackingEntryResponse, error) {
		return o.h.TrackingHistory.Handle(ctx, query)
	})
}

func (o *ParcelLifecycleOrchestrator) DeliveriesPerDay(
	ctx context.Context,
	query queries.GetDeliveriesPerDayQuery,
) ([]queries.DailyDeliveriesResponse, error) {
	return run(ctx, o, "deliveriesPerDay", func() ([]queries.DailyDeliveriesResponse, error) {
		return o.h.DeliveriesPerDay.Handle(ctx, query)
	})
}

func (o *ParcelLifecycleOrchestrator) GetParcel(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelResponse, error) {
	return run(ctx, o, "getParcel", func() (queries.ParcelResponse, error) {
		return o.h.GetParcel.Handle(ctx, query)
	})
}

func (o *ParcelLifecycleOrchestrator) GetRider(ctx context.Context, query queries.GetRiderQuery) (queries.RiderResponse, error) {
	return run(ctx, o, "getRider", func() (queries.RiderResponse, error) {
		return o.h.GetRider.Handle(ctx, query)
	})
}

func (o *ParcelLifecycleOrchestrator) RegisterRider(ctx context.Context, cmd commands.RegisterRiderCommand) (*rider.Rider, error) {
	return run(ctx, o, "registerRider", func() (*rider.Rider, error) {
		return o.h.RegisterRider.Handle(ctx, cmd)
	})
}

// DecideRider approves or rejects a rider application.
func (o *ParcelLifecycleOrchestrator) DecideRider(
	ctx context.Context,
	cmd commands.RiderDecisionCommand,
) (services.RiderUpdateResult, error) {
	op := "approve"
	if cmd.Decision() == commands.Reject {
		op = "reject"
	}
	return run(ctx, o, op, func() (services.RiderUpdateResult, error) {
		return o.h.RiderDecision.Handle(ctx, cmd)
	})
}

func (o *ParcelLifecycleOrchestrator) SetWorkStatus(
	ctx context.Context,
	cmd commands.SetWorkStatusCommand,
) (services.RiderUpdateResult, error) {
	return run(ctx, o, "setWorkStatus", func() (services.RiderUpdateResult, error) {
		return o.h.SetWorkStatus.Handle(ctx, cmd)
	})
}

func (o *ParcelLifecycleOrchestrator) RegisterUser(
	ctx context.Context,
	cmd commands.RegisterUserCommand,
) (commands.RegisterUserResult, error) {
	return run(ctx, o, "registerUser", func() (commands.RegisterUserResult, error) {
		return o.h.RegisterUser.Handle(ctx, cmd)
	})
}

// run times fn and records its outcome. Partial failures are logged at error
// level with the applied and failed steps so they can be remediated.
func run[T any](ctx context.Context, o *ParcelLifecycleOrchestrator, op string, fn func() (T, error)) (T, error) {
	started := time.Now()
	result, err := fn()
	metrics.LifecycleOperationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())

	kind := errs.KindOf(err)
	metrics.LifecycleOperationsTotal.WithLabelValues(op, string(kind)).Inc()

	var pf *errs.PartialFailureError
	switch {
	case err == nil:
	case errors.As(err, &pf):
		metrics.PartialFailuresTotal.WithLabelValues(op, pf.Failed, strconv.FormatBool(pf.Compensated)).Inc()
		o.logger.ErrorContext(ctx, "partial failure",
			"operation", op,
			"applied", pf.Applied,
			"failed_step", pf.Failed,
			"compensated", pf.Compensated,
			"error", pf.Cause,
		)
	case kind == errs.KindUnknown || kind == errs.KindExternalService:
		o.logger.ErrorContext(ctx, "operation failed", "operation", op, "error", err)
	default:
		o.logger.DebugContext(ctx, "operation rejected", "operation", op, "kind", kind, "error", err)
	}
	return result, err
}
