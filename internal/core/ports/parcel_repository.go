// Package ports defines the contracts between the lifecycle core and its
// infrastructure: repositories bound to a unit of work, and the payment gateway.
package ports

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// ErrTrackingIDTaken is the cause of the conflict returned by Add when another
// parcel already holds the tracking identifier.
var ErrTrackingIDTaken = errors.New("tracking id already taken")

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel. The tracking identifier is unique at the
	// storage layer; a collision is reported as a conflict caused by
	// ErrTrackingIDTaken.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel by its tracking identifier.
	GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)

	// CountUndeliveredByRider counts parcels assigned to the rider whose
	// delivery status is not parcel_delivered.
	CountUndeliveredByRider(ctx context.Context, riderID kernel.UUID) (int64, error)
}
