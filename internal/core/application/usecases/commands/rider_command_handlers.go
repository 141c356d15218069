package commands

import (
	"context"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/rider"
)

type RegisterRiderCommandHandler struct {
	uowFactory UoWFactory
	workload   *services.RiderWorkloadManager
}

func NewRegisterRiderCommandHandler(uowFactory UoWFactory, workload *services.RiderWorkloadManager) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{uowFactory: uowFactory, workload: workload}
}

func (h RegisterRiderCommandHandler) Handle(ctx context.Context, command RegisterRiderCommand) (*rider.Rider, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return nil, err
	}
	defer release()

	steps := services.NewSaga("registerRider")
	r, err := h.workload.Register(ctx, steps, uow, command.Email(), command.Name(), command.District())
	if err != nil {
		return nil, steps.Abort(ctx, uow, err)
	}

	if err = commit(ctx, uow, steps); err != nil {
		return nil, err
	}
	return r, nil
}

// RiderDecisionCommandHandler approves or rejects a rider application.
// Approval also promotes the matching user account.
type RiderDecisionCommandHandler struct {
	uowFactory UoWFactory
	workload   *services.RiderWorkloadManager
}

func NewRiderDecisionCommandHandler(uowFactory UoWFactory, workload *services.RiderWorkloadManager) RiderDecisionCommandHandler {
	return RiderDecisionCommandHandler{uowFactory: uowFactory, workload: workload}
}

func (h RiderDecisionCommandHandler) Handle(ctx context.Context, command RiderDecisionCommand) (services.RiderUpdateResult, error) {
	if err := command.Validate(); err != nil {
		return services.RiderUpdateResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return services.RiderUpdateResult{}, err
	}
	defer release()

	var (
		steps  *services.Saga
		result services.RiderUpdateResult
	)
	switch command.Decision() {
	case Approve:
		steps = services.NewSaga("approve")
		result, err = h.workload.Approve(ctx, steps, uow, command.RiderID())
	default:
		steps = services.NewSaga("reject")
		result, err = h.workload.Reject(ctx, steps, uow, command.RiderID())
	}
	if err != nil {
		return services.RiderUpdateResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commitIfWritten(ctx, uow, steps); err != nil {
		return services.RiderUpdateResult{}, err
	}
	return result, nil
}

type SetWorkStatusCommandHandler struct {
	uowFactory UoWFactory
	workload   *services.RiderWorkloadManager
}

func NewSetWorkStatusCommandHandler(uowFactory UoWFactory, workload *services.RiderWorkloadManager) SetWorkStatusCommandHandler {
	return SetWorkStatusCommandHandler{uowFactory: uowFactory, workload: workload}
}

func (h SetWorkStatusCommandHandler) Handle(ctx context.Context, command SetWorkStatusCommand) (services.RiderUpdateResult, error) {
	if err := command.Validate(); err != nil {
		return services.RiderUpdateResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return services.RiderUpdateResult{}, err
	}
	defer release()

	steps := services.NewSaga("setWorkStatus")
	result, err := h.workload.SetWorkStatus(ctx, steps, uow, command.RiderID(), command.WorkStatus())
	if err != nil {
		return services.RiderUpdateResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commitIfWritten(ctx, uow, steps); err != nil {
		return services.RiderUpdateResult{}, err
	}
	return result, nil
}
