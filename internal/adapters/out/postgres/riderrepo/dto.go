// Package riderrepo maps rider aggregates to the riders table.
package riderrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email      string    `gorm:"uniqueIndex;not null"`
	Name       string    `gorm:"not null"`
	District   string
	Status     string    `gorm:"not null"`
	WorkStatus string    `gorm:"index"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:         r.ID().Bytes(),
		Email:      r.Email().String(),
		Name:       r.Name(),
		District:   r.District(),
		Status:     r.Status().String(),
		WorkStatus: r.WorkStatus().String(),
		CreatedAt:  r.CreatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	status, err := rider.ParseApprovalStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	workStatus := rider.NoWorkStatus
	if dto.WorkStatus != "" {
		if workStatus, err = rider.ParseWorkStatus(dto.WorkStatus); err != nil {
			return nil, err
		}
	}

	return rider.RestoreRider(id, email, dto.Name, dto.District, status, workStatus, dto.CreatedAt)
}
