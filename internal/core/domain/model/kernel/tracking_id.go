package kernel

import (
	"fmt"
	"regexp"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// TrackingIDPrefix is the literal every tracking identifier starts with.
const TrackingIDPrefix = "PRCL"

// ErrTrackingIDIsNotConstructed is returned when validating a zero-value TrackingID.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError("TrackingID must be created via NewTrackingID")

var trackingIDPattern = regexp.MustCompile(`^PRCL-\d{8}-[0-9A-F]{6}$`)

// TrackingID is the externally shareable shipment identifier, formatted
// PRCL-YYYYMMDD-XXXXXX. It is assigned once per parcel and keys the ledger.
type TrackingID struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingID parses s and rejects anything that does not match the format.
func NewTrackingID(s string) (TrackingID, error) {
	if s == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}
	if !trackingIDPattern.MatchString(s) {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingId",
			fmt.Errorf("%q does not match %s-YYYYMMDD-XXXXXX", s, TrackingIDPrefix),
		)
	}

	return TrackingID{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (t TrackingID) String() string {
	return t.value
}

func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

func (t TrackingID) Validate() error {
	return t.guard.Validate(ErrTrackingIDIsNotConstructed)
}
