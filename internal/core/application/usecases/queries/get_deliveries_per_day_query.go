package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetDeliveriesPerDayQueryIsNotConstructed = errors.New(
	"GetDeliveriesPerDayQuery must be created via NewGetDeliveriesPerDayQuery constructor",
)

// GetDeliveriesPerDayQuery counts a rider's delivered parcels per UTC day.
type GetDeliveriesPerDayQuery struct {
	riderEmail kernel.Email

	guard guard.ConstructorGuard
}

func NewGetDeliveriesPerDayQuery(riderEmail string) (GetDeliveriesPerDayQuery, error) {
	email, err := kernel.NewEmail(riderEmail)
	if err != nil {
		return GetDeliveriesPerDayQuery{}, err
	}
	return GetDeliveriesPerDayQuery{riderEmail: email, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveriesPerDayQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesPerDayQueryIsNotConstructed)
}

func (q GetDeliveriesPerDayQuery) RiderEmail() kernel.Email { return q.riderEmail }

// DailyDeliveriesResponse is one day of the report. Date is YYYY-MM-DD.
type DailyDeliveriesResponse struct {
	Date  string
	Count int64
}
