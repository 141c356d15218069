// Package trackingrepo stores the append-only tracking ledger.
package trackingrepo

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"

	"gorm.io/gorm"
)

// EntryDTO is one ledger row. Seq breaks ties between entries sharing a
// timestamp so history keeps append order.
type EntryDTO struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	TrackingID string    `gorm:"index:idx_tracking_entries_tracking_created,priority:1;not null"`
	Status     string    `gorm:"index;not null"`
	Details    string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index:idx_tracking_entries_tracking_created,priority:2;not null"`
}

func (EntryDTO) TableName() string {
	return "tracking_entries"
}

func toDomain(dto EntryDTO) (tracking.Entry, error) {
	trackingID, err := kernel.NewTrackingID(dto.TrackingID)
	if err != nil {
		return tracking.Entry{}, err
	}
	return tracking.RestoreEntry(trackingID, dto.Status, dto.Details, dto.CreatedAt)
}

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

func (r *GormTrackingRepository) Append(ctx context.Context, entry tracking.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		TrackingID: entry.TrackingID().String(),
		Status:     entry.Status(),
		Details:    entry.Details(),
		CreatedAt:  entry.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTrackingRepository) Last(ctx context.Context, trackingID kernel.TrackingID) (*tracking.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID.String()).
		Order("created_at DESC, seq DESC").
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	entry, err := toDomain(dtos[0])
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormTrackingRepository) History(ctx context.Context, trackingID kernel.TrackingID) ([]tracking.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID.String()).
		Order("created_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]tracking.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *GormTrackingRepository) HasStatus(ctx context.Context, trackingID kernel.TrackingID, status string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("tracking_id = ? AND status = ?", trackingID.String(), status).
		Count(&count).Error
	return count > 0, err
}

// DeliveriesPerDay joins the rider's delivered parcels with their
// parcel_delivered entries and counts distinct parcels per UTC day.
func (r *GormTrackingRepository) DeliveriesPerDay(ctx context.Context, riderEmail kernel.Email) ([]ports.DailyDeliveries, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			(t.created_at AT TIME ZONE 'UTC')::date AS day,
			COUNT(DISTINCT p.tracking_id) AS deliveries
		FROM parcels p
		JOIN tracking_entries t ON t.tracking_id = p.tracking_id AND t.status = ?
		WHERE p.rider_email = ? AND p.delivery_status = ?
		GROUP BY day
		ORDER BY day
	`, tracking.ParcelDelivered, riderEmail.String(), parcel.LabelDelivered).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]ports.DailyDeliveries, 0)
	for rows.Next() {
		var d ports.DailyDeliveries
		if err = rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		d.Date = time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, time.UTC)
		report = append(report, d)
	}
	return report, rows.Err()
}
