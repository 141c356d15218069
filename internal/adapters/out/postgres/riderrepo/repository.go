package riderrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{db: db, tracker: tracker}
}

// Add saves a new rider. A second application under the same email is a conflict.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("rider "+dto.Email, "already registered", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("riderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the rider with SELECT ... FOR UPDATE. Outside a
// transaction the lock is released as soon as the statement ends.
func (r *GormRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormRiderRepository) get(db *gorm.DB, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("riderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInDelivery retrieves every rider whose work status is in_delivery.
func (r *GormRiderRepository) GetAllInDelivery(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos, "work_status = ?", rider.InDelivery.String()).Error; err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}
	return riders, nil
}
