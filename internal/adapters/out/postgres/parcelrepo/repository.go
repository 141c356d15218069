package parcelrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database. The connection must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("parcel "+dto.TrackingID, "tracking id already taken", ports.ErrTrackingIDTaken)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database, zero values included.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcelId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcelId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a parcel by its tracking identifier.
func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountUndeliveredByRider counts parcels assigned to the rider that are not delivered.
func (r *GormParcelRepository) CountUndeliveredByRider(ctx context.Context, riderID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("rider_id = ?", riderID.Bytes()).
		Where("NOT (COALESCE(delivery_status, '') = ANY(?))", pq.Array([]string{parcel.LabelDelivered})).
		Count(&count).Error
	return count, err
}
