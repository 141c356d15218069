package queries

import (
	"context"
	"errors"

	"parcelhub/internal/pkg/errs"
)

// GetTrackingHistoryQueryHandler returns a finite, restartable snapshot of the
// ledger. An unknown tracking id is not found; a known parcel without entries
// yields an empty history.
type GetTrackingHistoryQueryHandler struct {
	ledger  LedgerReader
	parcels ParcelReader
}

func NewGetTrackingHistoryQueryHandler(ledger LedgerReader, parcels ParcelReader) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{ledger: ledger, parcels: parcels}
}

func (h GetTrackingHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingHistoryQuery,
) ([]TrackingEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.ledger.History(ctx, query.TrackingID())
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		if _, err = h.parcels.GetByTrackingID(ctx, query.TrackingID()); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, errs.NewObjectNotFoundError("trackingId", query.TrackingID().String())
			}
			return nil, err
		}
	}

	history := make([]TrackingEntryResponse, 0, len(entries))
	for _, e := range entries {
		history = append(history, TrackingEntryResponse{
			TrackingID: e.TrackingID().String(),
			Status:     e.Status(),
			Details:    e.Details(),
			CreatedAt:  e.CreatedAt(),
		})
	}
	return history, nil
}
