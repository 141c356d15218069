package services

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
)

// TrackingLedger appends lifecycle events. Entries for one tracking id never go
// back in time: a clock reading older than the last entry is clamped to it.
type TrackingLedger struct {
	now func() time.Time
}

func NewTrackingLedger(now func() time.Time) *TrackingLedger {
	if now == nil {
		now = time.Now
	}
	return &TrackingLedger{now: now}
}

// Append writes one entry for status as a saga step. Call it only after the
// triggering entity write succeeded.
func (l *TrackingLedger) Append(
	ctx context.Context,
	steps *Saga,
	repo ports.TrackingRepository,
	trackingID kernel.TrackingID,
	status string,
) (tracking.Entry, error) {
	at := l.now().UTC()

	last, err := repo.Last(ctx, trackingID)
	if err != nil {
		return tracking.Entry{}, err
	}
	if last != nil && at.Before(last.CreatedAt()) {
		at = last.CreatedAt()
	}

	entry, err := tracking.NewEntry(trackingID, status, at)
	if err != nil {
		return tracking.Entry{}, err
	}

	if err = steps.Step(StepLedgerAppend, func() error {
		return repo.Append(ctx, entry)
	}); err != nil {
		return tracking.Entry{}, err
	}

	return entry, nil
}
