package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/guard"
)

var ErrGetRiderQueryIsNotConstructed = errors.New(
	"GetRiderQuery must be created via NewGetRiderQuery constructor",
)

type GetRiderQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRiderQuery(riderID kernel.UUID) (GetRiderQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderQuery{}, err
	}
	return GetRiderQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRiderQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderQueryIsNotConstructed)
}

func (q GetRiderQuery) RiderID() kernel.UUID { return q.riderID }

// RiderResponse is the rider read model. WorkStatus is empty until approval.
type RiderResponse struct {
	ID         string
	Email      string
	Name       string
	District   string
	Status     string
	WorkStatus string
	CreatedAt  time.Time
}

func NewRiderResponse(r *rider.Rider) RiderResponse {
	return RiderResponse{
		ID:         r.ID().String(),
		Email:      r.Email().String(),
		Name:       r.Name(),
		District:   r.District(),
		Status:     r.Status().String(),
		WorkStatus: r.WorkStatus().String(),
		CreatedAt:  r.CreatedAt(),
	}
}
