// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read through narrow reader interfaces so any store backing the
// repositories serves them, and return read models shaped for callers.
package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
)

type (
	// LedgerReader is the read side of the tracking ledger.
	LedgerReader interface {
		History(ctx context.Context, trackingID kernel.TrackingID) ([]tracking.Entry, error)
		DeliveriesPerDay(ctx context.Context, riderEmail kernel.Email) ([]ports.DailyDeliveries, error)
	}

	ParcelReader interface {
		Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
		GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)
	}

	RiderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)
	}
)
