// Package tracking holds ledger entries: immutable records of one lifecycle
// event for a tracking identifier.
package tracking

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// Status tokens appended by the lifecycle. setStatus may append any other label.
const (
	ParcelCreated   = "parcel_created"
	ParcelPaid      = "parcel_paid"
	DriverAssigned  = "driver_assigned"
	ParcelDelivered = "parcel_delivered"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one ledger line. Entries are never edited or deleted.
type Entry struct {
	trackingID kernel.TrackingID
	status     string
	details    string
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewEntry stamps a new ledger line and derives its details from the status.
func NewEntry(trackingID kernel.TrackingID, status string, createdAt time.Time) (Entry, error) {
	return RestoreEntry(trackingID, status, Details(status), createdAt)
}

// RestoreEntry rebuilds a stored entry with its recorded details.
func RestoreEntry(trackingID kernel.TrackingID, status, details string, createdAt time.Time) (Entry, error) {
	var statusErr, createdAtErr error
	if strings.TrimSpace(status) == "" {
		statusErr = errs.NewValueIsRequiredError("status")
	}
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(trackingID.Validate(), statusErr, createdAtErr); err != nil {
		return Entry{}, err
	}

	return Entry{
		trackingID: trackingID,
		status:     status,
		details:    details,
		createdAt:  createdAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Details renders a status token for humans: "parcel_paid" reads "parcel paid".
func Details(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

func (e Entry) TrackingID() kernel.TrackingID { return e.trackingID }
func (e Entry) Status() string                { return e.status }
func (e Entry) Details() string               { return e.details }
func (e Entry) CreatedAt() time.Time          { return e.createdAt }

func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}
