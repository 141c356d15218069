package queries_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

type MockLedgerReader struct{ mock.Mock }

func (m *MockLedgerReader) History(ctx context.Context, id kernel.TrackingID) ([]tracking.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.Entry), args.Error(1)
}

func (m *MockLedgerReader) DeliveriesPerDay(ctx context.Context, email kernel.Email) ([]ports.DailyDeliveries, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.DailyDeliveries), args.Error(1)
}

type MockParcelReader struct{ mock.Mock }

func (m *MockParcelReader) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelReader) GetByTrackingID(ctx context.Context, id kernel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockRiderReader struct{ mock.Mock }

func (m *MockRiderReader) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	trackingID, err := kernel.NewTrackingID("PRCL-20240115-AB12CD")
	require.NoError(t, err)
	details, err := parcel.NewDetails("Box A", "Alice", "a@x.com", "Bob", "Main st. 1")
	require.NoError(t, err)
	cost, err := kernel.NewMoneyFromMajor(500, "usd")
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, details, cost, fixedNow)
	require.NoError(t, err)
	return p
}
