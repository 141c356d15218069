package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func mustTrackingID(t *testing.T) kernel.TrackingID {
	t.Helper()
	id, err := kernel.NewTrackingID("PRCL-20240115-AB12CD")
	require.NoError(t, err)
	return id
}

func mustEmail(t *testing.T, s string) kernel.Email {
	t.Helper()
	e, err := kernel.NewEmail(s)
	require.NoError(t, err)
	return e
}

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	details, err := parcel.NewDetails("Box A", "Alice", "a@x.com", "", "")
	require.NoError(t, err)
	cost, err := kernel.NewMoneyFromMajor(500, "usd")
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), mustTrackingID(t), details, cost, fixedNow)
	require.NoError(t, err)
	return p
}

func newRider(t *testing.T, status rider.ApprovalStatus, ws rider.WorkStatus) *rider.Rider {
	t.Helper()
	r, err := rider.RestoreRider(kernel.NewUUID(), mustEmail(t, "r1@x.com"), "Rider One", "", status, ws, fixedNow)
	require.NoError(t, err)
	return r
}

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), mustEmail(t, "r1@x.com"), "Rider One", role, fixedNow)
	require.NoError(t, err)
	return u
}
