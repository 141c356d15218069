// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler follows the same shape: validate the command, open a unit of
// work, run the transition as a saga of recorded writes, commit once.
package commands

import (
	"context"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UoW manages one transaction across every repository a lifecycle
	// transition touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcels := uow.ParcelRepository()
	//   riders := uow.RiderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepository() ports.ParcelRepository
		RiderRepository() ports.RiderRepository
		PaymentRepository() ports.PaymentRepository
		TrackingRepository() ports.TrackingRepository
		UserRepository() ports.UserRepository
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// commit closes the transaction as the final saga step.
func commit(ctx context.Context, uow TxManager, steps *services.Saga) error {
	if err := steps.Step(services.StepCommit, func() error {
		return uow.Commit(ctx)
	}); err != nil {
		return steps.Abort(ctx, uow, err)
	}
	return nil
}

// commitIfWritten commits only when a step was applied; an unchanged
// transition leaves the transaction to the deferred rollback.
func commitIfWritten(ctx context.Context, uow TxManager, steps *services.Saga) error {
	if len(steps.Applied()) == 0 {
		return nil
	}
	return commit(ctx, uow, steps)
}

// begin opens uow; the returned release must be deferred by the caller.
func begin(ctx context.Context, uow TxManager) (release func(), err error) {
	if err = uow.Begin(ctx); err != nil {
		return func() {}, err
	}
	return func() { _ = uow.Rollback(ctx) }, nil
}
