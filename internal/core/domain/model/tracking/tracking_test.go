package tracking_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	trackingID, err := kernel.NewTrackingID("PRCL-20240115-AB12CD")
	require.NoError(t, err)
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("BST", 6*3600))

	e, err := tracking.NewEntry(trackingID, tracking.ParcelDelivered, at)

	require.NoError(t, err)
	require.NoError(t, e.Validate())
	assert.Equal(t, "parcel_delivered", e.Status())
	assert.Equal(t, "parcel delivered", e.Details())
	assert.Equal(t, time.UTC, e.CreatedAt().Location())
	assert.True(t, e.CreatedAt().Equal(at))
}

func TestNewEntry_Invalid(t *testing.T) {
	var trackingID kernel.TrackingID

	_, err := tracking.NewEntry(trackingID, " ", time.Time{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "createdAt")
}

func TestDetails(t *testing.T) {
	testCases := map[string]string{
		"parcel_created":  "parcel created",
		"driver_assigned": "driver assigned",
		"pending-pickup":  "pending-pickup",
		"in_transit_hub":  "in transit hub",
	}
	for status, want := range testCases {
		assert.Equal(t, want, tracking.Details(status))
	}
}

func TestNewEntry_KeepsStatusVerbatim(t *testing.T) {
	trackingID, err := kernel.NewTrackingID("PRCL-20240115-AB12CD")
	require.NoError(t, err)

	e, err := tracking.NewEntry(trackingID, " at_hub ", time.Now())

	require.NoError(t, err)
	assert.Equal(t, " at_hub ", e.Status())
	assert.Equal(t, " at hub ", e.Details())
}
