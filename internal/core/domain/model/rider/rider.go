package rider

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrRiderIsNotConstructed is returned when a Rider was not created through
	// NewRider or RestoreRider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
)

// Rider is the aggregate root for a courier. Approval and work status are only
// changed through the methods below, which report whether anything changed so
// callers can build modification results.
type Rider struct {
	id         kernel.UUID
	email      kernel.Email
	name       string
	district   string
	status     ApprovalStatus
	workStatus WorkStatus
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewRider registers a pending rider application.
//
// Example:
//
//	email, _ := kernel.NewEmail("r1@x.com")
//	r, err := rider.NewRider(kernel.NewUUID(), email, "Rider One", "Dhaka", time.Now())
func NewRider(id kernel.UUID, email kernel.Email, name, district string, createdAt time.Time) (*Rider, error) {
	return RestoreRider(id, email, name, district, Pending, NoWorkStatus, createdAt)
}

// RestoreRider rebuilds a rider from persistent storage.
func RestoreRider(
	id kernel.UUID,
	email kernel.Email,
	name, district string,
	status ApprovalStatus,
	workStatus WorkStatus,
	createdAt time.Time,
) (*Rider, error) {
	var nameErr, createdAtErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(id.Validate(), email.Validate(), nameErr, status.Validate(), createdAtErr); err != nil {
		return nil, err
	}

	return &Rider{
		id:         id,
		email:      email,
		name:       strings.TrimSpace(name),
		district:   strings.TrimSpace(district),
		status:     status,
		workStatus: workStatus,
		createdAt:  createdAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) ID() kernel.UUID        { return r.id }
func (r *Rider) Email() kernel.Email    { return r.email }
func (r *Rider) Name() string           { return r.name }
func (r *Rider) District() string       { return r.district }
func (r *Rider) Status() ApprovalStatus { return r.status }
func (r *Rider) WorkStatus() WorkStatus { return r.workStatus }
func (r *Rider) CreatedAt() time.Time   { return r.createdAt }
func (r *Rider) IsApproved() bool       { return r.status == Approved }
func (r *Rider) IsInDelivery() bool     { return r.workStatus == InDelivery }

func (r *Rider) conflict(reason string) error {
	return errs.NewConflictError("rider "+r.id.String(), reason)
}

// Approve marks the rider approved. A rider without a work status becomes
// Available; a rider already in delivery keeps its current work.
func (r *Rider) Approve() (modified bool) {
	if r.status != Approved {
		r.status = Approved
		modified = true
	}
	if r.workStatus == NoWorkStatus {
		r.workStatus = Available
		modified = true
	}
	return modified
}

// Reject marks the rider rejected and leaves the work status untouched.
func (r *Rider) Reject() (modified bool) {
	if r.status == Rejected {
		return false
	}
	r.status = Rejected
	return true
}

// ValidateCanTakeDelivery checks that the rider is approved and not already
// carrying a parcel.
func (r *Rider) ValidateCanTakeDelivery() error {
	if r.status != Approved {
		return r.conflict("not approved (status " + r.status.String() + ")")
	}
	if r.workStatus == InDelivery {
		return r.conflict("already in delivery")
	}
	return nil
}

// StartDelivery commits the rider to a parcel.
func (r *Rider) StartDelivery() error {
	if err := r.ValidateCanTakeDelivery(); err != nil {
		return err
	}
	r.workStatus = InDelivery
	return nil
}

// FinishDelivery releases a rider in delivery. Riders in any other work status
// are left alone.
func (r *Rider) FinishDelivery() (modified bool) {
	if r.workStatus != InDelivery {
		return false
	}
	r.workStatus = Available
	return true
}

// SetWorkStatus applies ws directly. Only approved riders carry a work status.
func (r *Rider) SetWorkStatus(ws WorkStatus) (modified bool, err error) {
	if ws != Available && ws != InDelivery {
		return false, errs.NewValueIsInvalidError("workStatus")
	}
	if r.status != Approved {
		return false, r.conflict("not approved (status " + r.status.String() + ")")
	}
	if r.workStatus == ws {
		return false, nil
	}
	r.workStatus = ws
	return true, nil
}
