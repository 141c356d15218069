package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
	"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
)

// GetTrackingHistoryQuery retrieves the ledger of one parcel, oldest entry first.
//
// Example:
//
//	query, err := NewGetTrackingHistoryQuery("PRCL-20240115-AB12CD")
//	entries, err := handler.Handle(ctx, query)
//	for _, e := range entries {
//	    fmt.Println(e.CreatedAt, e.Status) // parcel_created, parcel_paid, ...
//	}
type GetTrackingHistoryQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewGetTrackingHistoryQuery(trackingID string) (GetTrackingHistoryQuery, error) {
	id, err := kernel.NewTrackingID(trackingID)
	if err != nil {
		return GetTrackingHistoryQuery{}, err
	}
	return GetTrackingHistoryQuery{trackingID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

func (q GetTrackingHistoryQuery) TrackingID() kernel.TrackingID { return q.trackingID }

// TrackingEntryResponse is one ledger entry in the read model.
type TrackingEntryResponse struct {
	TrackingID string
	Status     string
	Details    string
	CreatedAt  time.Time
}
