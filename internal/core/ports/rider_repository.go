package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetForUpdate is Get that also holds the rider against concurrent writers
	// until the surrounding unit of work ends. Transitions that change a
	// rider's work status read it this way.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllInDelivery returns every rider whose work status is in_delivery.
	// The workload repair job compares them against their assigned parcels.
	GetAllInDelivery(ctx context.Context) ([]*rider.Rider, error)
}
