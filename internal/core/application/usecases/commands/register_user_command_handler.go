package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// RegisterUserResult reports whether the account was created by this call.
type RegisterUserResult struct {
	User    *user.User
	Created bool
}

type RegisterUserCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewRegisterUserCommandHandler(uowFactory UoWFactory, now func() time.Time) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle is idempotent on email: an existing account is returned unchanged,
// including one inserted concurrently between the lookup and the insert.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, command RegisterUserCommand) (RegisterUserResult, error) {
	if err := command.Validate(); err != nil {
		return RegisterUserResult{}, err
	}

	uow := h.uowFactory.Create()
	release, err := begin(ctx, uow)
	if err != nil {
		return RegisterUserResult{}, err
	}
	defer release()

	existing, err := uow.UserRepository().GetByEmail(ctx, command.Email())
	if err == nil {
		return RegisterUserResult{User: existing}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return RegisterUserResult{}, err
	}

	account, err := user.NewUser(kernel.NewUUID(), command.Email(), command.DisplayName(), h.now())
	if err != nil {
		return RegisterUserResult{}, err
	}

	steps := services.NewSaga("registerUser")
	err = steps.Step(services.StepUserAdd, func() error {
		return uow.UserRepository().Add(ctx, account)
	})
	if errors.Is(err, ports.ErrEmailTaken) {
		_ = uow.Rollback(ctx)
		winner, getErr := h.uowFactory.Create().UserRepository().GetByEmail(ctx, command.Email())
		if getErr != nil {
			return RegisterUserResult{}, getErr
		}
		return RegisterUserResult{User: winner}, nil
	}
	if err != nil {
		return RegisterUserResult{}, steps.Abort(ctx, uow, err)
	}

	if err = commit(ctx, uow, steps); err != nil {
		return RegisterUserResult{}, err
	}
	return RegisterUserResult{User: account, Created: true}, nil
}
