package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/ports"
)

type ConfirmPaymentCommandHandler struct {
	uowFactory UoWFactory
	reconciler *services.PaymentReconciler
}

func NewConfirmPaymentCommandHandler(
	uowFactory UoWFactory,
	reconciler *services.PaymentReconciler,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory, reconciler: reconciler}
}

// Handle resolves the session outside any transaction, then settles it in one.
// Losing a concurrent settlement of the same transaction to the unique index
// rolls back and reports the winner's record as already settled.
func (h ConfirmPaymentCommandHandler) Handle(
	ctx context.Context,
	command ConfirmPaymentCommand,
) (services.PaymentConfirmationResult, error) {
	if err := command.Validate(); err != nil {
		return services.PaymentConfirmationResult{}, err
	}

	session, err := h.reconciler.Resolve(ctx, command.SessionID())
	if err != nil {
		return services.PaymentConfirmationResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return services.PaymentConfirmationResult{}, err
	}
	defer release()

	steps := services.NewSaga("confirmPayment")

	result, err := h.reconciler.Settle(ctx, steps, uow, session)
	if errors.Is(err, ports.ErrTransactionRecorded) {
		_ = uow.Rollback(ctx)
		settled, ok, findErr := h.reconciler.FindSettled(ctx, h.uowFactory.Create(), session.TransactionID)
		if findErr != nil {
			return services.PaymentConfirmationResult{}, findErr
		}
		if ok {
			return settled, nil
		}
		return services.PaymentConfirmationResult{}, err
	}
	if err != nil {
		return services.PaymentConfirmationResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commitIfWritten(ctx, uow, steps); err != nil {
		return services.PaymentConfirmationResult{}, err
	}
	return result, nil
}
