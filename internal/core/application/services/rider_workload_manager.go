package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// WorkloadRepositories is the part of a unit of work the workload manager
// writes to.
type WorkloadRepositories interface {
	RiderRepository() ports.RiderRepository
	ParcelRepository() ports.ParcelRepository
	UserRepository() ports.UserRepository
}

// RiderWorkloadManager owns rider approval and work availability.
//
// A rider is in_delivery only while it is the assigned rider of at least one
// parcel that is not delivered: Reserve refuses riders that are not approved or
// already busy, and Release frees a rider only once its last undelivered parcel
// is gone.
type RiderWorkloadManager struct {
	now    func() time.Time
	logger *slog.Logger
}

func NewRiderWorkloadManager(now func() time.Time, logger *slog.Logger) *RiderWorkloadManager {
	if now == nil {
		now = time.Now
	}
	return &RiderWorkloadManager{now: now, logger: logger.With("component", "rider_workload_manager")}
}

// Register stores a pending rider application.
func (m *RiderWorkloadManager) Register(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	email kernel.Email,
	name, district string,
) (*rider.Rider, error) {
	r, err := rider.NewRider(kernel.NewUUID(), email, name, district, m.now())
	if err != nil {
		return nil, err
	}

	if err = steps.Step(StepRiderAdd, func() error {
		return repos.RiderRepository().Add(ctx, r)
	}); err != nil {
		return nil, err
	}
	return r, nil
}

// Approve approves the rider, makes it available and promotes the account
// registered under its email to the rider role. A missing account is not an
// error; the promotion is reported as not applied.
func (m *RiderWorkloadManager) Approve(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	riderID kernel.UUID,
) (RiderUpdateResult, error) {
	r, err := repos.RiderRepository().GetForUpdate(ctx, riderID)
	if err != nil {
		return RiderUpdateResult{}, err
	}

	modified := r.Approve()
	if modified {
		if err = steps.Step(StepRiderUpdate, func() error {
			return repos.RiderRepository().Update(ctx, r)
		}); err != nil {
			return RiderUpdateResult{}, err
		}
	}

	result := NewRiderUpdateResult(r, modified)

	account, err := repos.UserRepository().GetByEmail(ctx, r.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		m.logger.InfoContext(ctx, "no account to promote", "rider_id", riderID.String(), "email", r.Email().String())
		return result, nil
	}
	if err != nil {
		return RiderUpdateResult{}, err
	}

	if account.PromoteToRider() {
		if err = steps.Step(StepUserPromote, func() error {
			return repos.UserRepository().Update(ctx, account)
		}); err != nil {
			return RiderUpdateResult{}, err
		}
		result.UserRolePromoted = true
	}

	return result, nil
}

// Reject marks the rider rejected. Nothing else changes.
func (m *RiderWorkloadManager) Reject(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	riderID kernel.UUID,
) (RiderUpdateResult, error) {
	r, err := repos.RiderRepository().GetForUpdate(ctx, riderID)
	if err != nil {
		return RiderUpdateResult{}, err
	}

	modified := r.Reject()
	if modified {
		if err = steps.Step(StepRiderUpdate, func() error {
			return repos.RiderRepository().Update(ctx, r)
		}); err != nil {
			return RiderUpdateResult{}, err
		}
	}
	return NewRiderUpdateResult(r, modified), nil
}

// SetWorkStatus applies a work status directly.
func (m *RiderWorkloadManager) SetWorkStatus(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	riderID kernel.UUID,
	ws rider.WorkStatus,
) (RiderUpdateResult, error) {
	r, err := repos.RiderRepository().GetForUpdate(ctx, riderID)
	if err != nil {
		return RiderUpdateResult{}, err
	}

	modified, err := r.SetWorkStatus(ws)
	if err != nil {
		return RiderUpdateResult{}, err
	}
	if modified {
		if err = steps.Step(StepRiderUpdate, func() error {
			return repos.RiderRepository().Update(ctx, r)
		}); err != nil {
			return RiderUpdateResult{}, err
		}
	}
	return NewRiderUpdateResult(r, modified), nil
}

// Reserve puts a rider loaded by the caller in delivery. The caller validates
// with ValidateCanTakeDelivery before its own writes so a refused assignment
// writes nothing.
func (m *RiderWorkloadManager) Reserve(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	r *rider.Rider,
) (RiderUpdateResult, error) {
	if err := r.StartDelivery(); err != nil {
		return RiderUpdateResult{}, err
	}

	if err := steps.Step(StepRiderUpdate, func() error {
		return repos.RiderRepository().Update(ctx, r)
	}); err != nil {
		return RiderUpdateResult{}, err
	}
	return NewRiderUpdateResult(r, true), nil
}

// Release makes a rider loaded by the caller available again when no
// undelivered parcel remains assigned to it. Run it after the parcel write of
// the same unit of work.
func (m *RiderWorkloadManager) Release(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	r *rider.Rider,
) (RiderUpdateResult, error) {
	return m.releaseIfIdle(ctx, steps, repos, r)
}

// ReleaseIdle frees every rider left in delivery without an undelivered parcel.
// It repairs transitions whose rider write never happened.
func (m *RiderWorkloadManager) ReleaseIdle(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
) ([]RiderUpdateResult, error) {
	busy, err := repos.RiderRepository().GetAllInDelivery(ctx)
	if err != nil {
		return nil, err
	}

	released := make([]RiderUpdateResult, 0)
	for _, r := range busy {
		result, releaseErr := m.releaseIfIdle(ctx, steps, repos, r)
		if releaseErr != nil {
			return nil, releaseErr
		}
		if result.Modified {
			m.logger.InfoContext(ctx, "released idle rider", "rider_id", r.ID().String())
			released = append(released, result)
		}
	}
	return released, nil
}

func (m *RiderWorkloadManager) releaseIfIdle(
	ctx context.Context,
	steps *Saga,
	repos WorkloadRepositories,
	r *rider.Rider,
) (RiderUpdateResult, error) {
	active, err := repos.ParcelRepository().CountUndeliveredByRider(ctx, r.ID())
	if err != nil {
		return RiderUpdateResult{}, err
	}
	if active > 0 {
		return NewRiderUpdateResult(r, false), nil
	}

	if !r.FinishDelivery() {
		return NewRiderUpdateResult(r, false), nil
	}

	if err = steps.Step(StepRiderUpdate, func() error {
		return repos.RiderRepository().Update(ctx, r)
	}); err != nil {
		return RiderUpdateResult{}, err
	}
	return NewRiderUpdateResult(r, true), nil
}
