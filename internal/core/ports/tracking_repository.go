package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/tracking"
)

// DailyDeliveries is one row of the deliveries-per-day report.
type DailyDeliveries struct {
	Date  time.Time
	Count int64
}

// TrackingRepository is the append-only ledger store. There is no update or
// delete.
type TrackingRepository interface {
	Append(ctx context.Context, entry tracking.Entry) error

	// Last returns the newest entry for the tracking id, or nil when the ledger
	// is empty.
	Last(ctx context.Context, trackingID kernel.TrackingID) (*tracking.Entry, error)

	// History returns every entry for the tracking id in append order.
	History(ctx context.Context, trackingID kernel.TrackingID) ([]tracking.Entry, error)

	// HasStatus tells whether an entry with the status exists for the tracking id.
	HasStatus(ctx context.Context, trackingID kernel.TrackingID, status string) (bool, error)

	// DeliveriesPerDay counts the rider's delivered parcels by the UTC date of
	// their parcel_delivered entries. A parcel marked delivered several times on
	// one day is counted once for that day.
	DeliveriesPerDay(ctx context.Context, riderEmail kernel.Email) ([]DailyDeliveries, error)
}
