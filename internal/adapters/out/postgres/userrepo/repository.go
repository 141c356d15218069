// Package userrepo persists platform accounts.
package userrepo

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents the database structure for persisting user accounts.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"uniqueIndex;not null"`
	DisplayName string
	Role        string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Email:       u.Email().String(),
		DisplayName: u.DisplayName(),
		Role:        string(u.Role()),
		CreatedAt:   u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, email, dto.DisplayName, role, dto.CreatedAt)
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{db: db, tracker: tracker}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("user "+dto.Email, "email already registered", ports.ErrEmailTaken)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("userId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
