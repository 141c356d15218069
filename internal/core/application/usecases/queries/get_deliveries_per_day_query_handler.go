package queries

import (
	"context"
	"sort"
)

const dateLayout = "2006-01-02"

// GetDeliveriesPerDayQueryHandler reports deliveries by the UTC date of their
// parcel_delivered ledger entry. A parcel marked delivered more than once is
// counted on one day only.
type GetDeliveriesPerDayQueryHandler struct {
	ledger LedgerReader
}

func NewGetDeliveriesPerDayQueryHandler(ledger LedgerReader) GetDeliveriesPerDayQueryHandler {
	return GetDeliveriesPerDayQueryHandler{ledger: ledger}
}

// Handle returns the days in ascending order. Days without deliveries are absent.
func (h GetDeliveriesPerDayQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesPerDayQuery,
) ([]DailyDeliveriesResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	days, err := h.ledger.DeliveriesPerDay(ctx, query.RiderEmail())
	if err != nil {
		return nil, err
	}

	report := make([]DailyDeliveriesResponse, 0, len(days))
	for _, d := range days {
		report = append(report, DailyDeliveriesResponse{Date: d.Date.UTC().Format(dateLayout), Count: d.Count})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Date < report[j].Date })
	return report, nil
}
