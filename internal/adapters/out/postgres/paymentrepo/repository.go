// Package paymentrepo persists settled payments. The unique indexes on
// transaction_id and tracking_id are what serializes concurrent settlements.
package paymentrepo

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentDTO represents the database structure for persisting payment records.
type PaymentDTO struct {
	TransactionID string    `gorm:"primaryKey"`
	TrackingID    string    `gorm:"uniqueIndex;not null"`
	ParcelID      uuid.UUID `gorm:"type:uuid;not null"`
	AmountMinor   int64     `gorm:"not null"`
	Currency      string    `gorm:"size:3;not null"`
	PayerEmail    string
	SettledAt     time.Time `gorm:"index;not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(r *payment.Record) PaymentDTO {
	return PaymentDTO{
		TransactionID: r.TransactionID(),
		TrackingID:    r.TrackingID().String(),
		ParcelID:      r.ParcelID().Bytes(),
		AmountMinor:   r.Amount().Minor(),
		Currency:      r.Amount().Currency(),
		PayerEmail:    r.PayerEmail(),
		SettledAt:     r.SettledAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Record, error) {
	trackingID, err := kernel.NewTrackingID(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountMinor, dto.Currency)
	if err != nil {
		return nil, err
	}
	return payment.NewRecord(dto.TransactionID, trackingID, parcelID, amount, dto.PayerEmail, dto.SettledAt)
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add inserts the record. Either unique index firing means the settlement was
// already recorded and is reported as a conflict caused by ports.ErrTransactionRecorded.
func (r *GormPaymentRepository) Add(ctx context.Context, record *payment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("payment "+dto.TransactionID, "already recorded", ports.ErrTransactionRecorded)
		}
		return err
	}
	return nil
}

func (r *GormPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Record, error) {
	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transactionId", transactionID)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormPaymentRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*payment.Record, error) {
	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// GetAllUnreconciled finds records whose parcel is still unpaid or whose ledger
// lacks parcel_paid, oldest settlement first.
func (r *GormPaymentRepository) GetAllUnreconciled(ctx context.Context, limit int) ([]*payment.Record, error) {
	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT pay.*
		FROM payments pay
		JOIN parcels p ON p.tracking_id = pay.tracking_id
		WHERE p.payment_status <> ?
		   OR NOT EXISTS (
				SELECT 1 FROM tracking_entries t
				WHERE t.tracking_id = pay.tracking_id AND t.status = ?
		   )
		ORDER BY pay.settled_at
		LIMIT ?
	`, parcel.PaymentPaid.String(), tracking.ParcelPaid, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*payment.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, rec)
	}
	return records, nil
}
