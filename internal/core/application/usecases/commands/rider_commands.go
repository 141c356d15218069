package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrRegisterRiderCommandIsNotConstructed = errors.New(
		"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
	)
	ErrRiderDecisionCommandIsNotConstructed = errors.New(
		"RiderDecisionCommand must be created via NewRiderDecisionCommand constructor",
	)
	ErrSetWorkStatusCommandIsNotConstructed = errors.New(
		"SetWorkStatusCommand must be created via NewSetWorkStatusCommand constructor",
	)
)

// RegisterRiderCommand is a rider application.
type RegisterRiderCommand struct {
	email    kernel.Email
	name     string
	district string

	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(email, name, district string) (RegisterRiderCommand, error) {
	e, err := kernel.NewEmail(email)
	if err != nil {
		return RegisterRiderCommand{}, err
	}
	return RegisterRiderCommand{email: e, name: name, district: district, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) Email() kernel.Email { return c.email }
func (c RegisterRiderCommand) Name() string        { return c.name }
func (c RegisterRiderCommand) District() string    { return c.district }

// Decision is the outcome of reviewing a rider application.
type Decision int

const (
	Approve Decision = iota + 1
	Reject
)

// RiderDecisionCommand approves or rejects a rider.
type RiderDecisionCommand struct {
	riderID  kernel.UUID
	decision Decision

	guard guard.ConstructorGuard
}

func NewRiderDecisionCommand(riderID kernel.UUID, decision Decision) (RiderDecisionCommand, error) {
	var decisionErr error
	if decision != Approve && decision != Reject {
		decisionErr = errs.NewValueIsInvalidError("decision")
	}
	if err := errors.Join(riderID.Validate(), decisionErr); err != nil {
		return RiderDecisionCommand{}, err
	}
	return RiderDecisionCommand{riderID: riderID, decision: decision, guard: guard.NewConstructorGuard()}, nil
}

func (c RiderDecisionCommand) Validate() error {
	return c.guard.Validate(ErrRiderDecisionCommandIsNotConstructed)
}

func (c RiderDecisionCommand) RiderID() kernel.UUID { return c.riderID }
func (c RiderDecisionCommand) Decision() Decision   { return c.decision }

// SetWorkStatusCommand applies a rider work status directly.
type SetWorkStatusCommand struct {
	riderID    kernel.UUID
	workStatus rider.WorkStatus

	guard guard.ConstructorGuard
}

func NewSetWorkStatusCommand(riderID kernel.UUID, workStatus string) (SetWorkStatusCommand, error) {
	ws, wsErr := rider.ParseWorkStatus(workStatus)
	if err := errors.Join(riderID.Validate(), wsErr); err != nil {
		return SetWorkStatusCommand{}, err
	}
	return SetWorkStatusCommand{riderID: riderID, workStatus: ws, guard: guard.NewConstructorGuard()}, nil
}

func (c SetWorkStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetWorkStatusCommandIsNotConstructed)
}

func (c SetWorkStatusCommand) RiderID() kernel.UUID         { return c.riderID }
func (c SetWorkStatusCommand) WorkStatus() rider.WorkStatus { return c.workStatus }
