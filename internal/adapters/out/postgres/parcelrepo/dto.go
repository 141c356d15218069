// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// tracking_id carries the unique index that rejects colliding identifiers.
type ParcelDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID      string    `gorm:"uniqueIndex;not null"`
	ParcelName      string    `gorm:"not null"`
	SenderName      string
	SenderEmail     string `gorm:"index;not null"`
	ReceiverName    string
	ReceiverAddress string
	CostMinor       int64     `gorm:"not null"`
	Currency        string    `gorm:"size:3;not null"`
	Rider           *RiderDTO `gorm:"embedded;embeddedPrefix:rider_"`
	DeliveryStatus  string    `gorm:"index"`
	PaymentStatus   string    `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// RiderDTO is the rider identity embedded in the parcel row.
type RiderDTO struct {
	ID    *uuid.UUID `gorm:"type:uuid;index"`
	Email *string    `gorm:"index"`
	Name  *string
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	d := p.Details()
	dto := ParcelDTO{
		ID:              p.ID().Bytes(),
		TrackingID:      p.TrackingID().String(),
		ParcelName:      d.Name(),
		SenderName:      d.SenderName(),
		SenderEmail:     d.SenderEmail().String(),
		ReceiverName:    d.ReceiverName(),
		ReceiverAddress: d.ReceiverAddress(),
		CostMinor:       p.Cost().Minor(),
		Currency:        p.Cost().Currency(),
		Rider:           &RiderDTO{},
		DeliveryStatus:  p.DeliveryStatus().Label(),
		PaymentStatus:   p.PaymentStatus().String(),
		CreatedAt:       p.CreatedAt(),
	}

	if r := p.Rider(); r != nil {
		id := r.RiderID().Bytes()
		email := r.Email().String()
		name := r.Name()
		dto.Rider = &RiderDTO{ID: &id, Email: &email, Name: &name}
	}
	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	trackingID, err := kernel.NewTrackingID(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	details, err := parcel.NewDetails(dto.ParcelName, dto.SenderName, dto.SenderEmail, dto.ReceiverName, dto.ReceiverAddress)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.CostMinor, dto.Currency)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := parcel.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var assignment *parcel.RiderAssignment
	if dto.Rider != nil && dto.Rider.ID != nil {
		riderID, idErr := kernel.UUIDFromBytes(dto.Rider.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		email, emailErr := kernel.NewEmail(deref(dto.Rider.Email))
		if emailErr != nil {
			return nil, emailErr
		}
		a, assignErr := parcel.NewRiderAssignment(riderID, email, deref(dto.Rider.Name))
		if assignErr != nil {
			return nil, assignErr
		}
		assignment = &a
	}

	return parcel.RestoreParcel(
		id,
		trackingID,
		details,
		cost,
		assignment,
		parcel.RestoreDeliveryStatus(dto.DeliveryStatus),
		paymentStatus,
		dto.CreatedAt,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
