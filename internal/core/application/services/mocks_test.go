package services_test

import (
	"context"
	"io"
	"log/slog"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, id kernel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) CountUndeliveredByRider(ctx context.Context, riderID kernel.UUID) (int64, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllInDelivery(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, r *payment.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, id string) (*payment.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Record), args.Error(1)
}

func (m *MockPaymentRepository) GetByTrackingID(ctx context.Context, id kernel.TrackingID) (*payment.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Record), args.Error(1)
}

func (m *MockPaymentRepository) GetAllUnreconciled(ctx context.Context, limit int) ([]*payment.Record, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Record), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Append(ctx context.Context, e tracking.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockTrackingRepository) Last(ctx context.Context, id kernel.TrackingID) (*tracking.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Entry), args.Error(1)
}

func (m *MockTrackingRepository) History(ctx context.Context, id kernel.TrackingID) ([]tracking.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.Entry), args.Error(1)
}

func (m *MockTrackingRepository) HasStatus(ctx context.Context, id kernel.TrackingID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrackingRepository) DeliveriesPerDay(ctx context.Context, email kernel.Email) ([]ports.DailyDeliveries, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.DailyDeliveries), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// repos bundles the mocks behind the repository accessors of a unit of work.
type repos struct {
	parcels  *MockParcelRepository
	riders   *MockRiderRepository
	payments *MockPaymentRepository
	ledger   *MockTrackingRepository
	users    *MockUserRepository
}

func newRepos() *repos {
	return &repos{
		parcels:  new(MockParcelRepository),
		riders:   new(MockRiderRepository),
		payments: new(MockPaymentRepository),
		ledger:   new(MockTrackingRepository),
		users:    new(MockUserRepository),
	}
}

func (r *repos) ParcelRepository() ports.ParcelRepository     { return r.parcels }
func (r *repos) RiderRepository() ports.RiderRepository       { return r.riders }
func (r *repos) PaymentRepository() ports.PaymentRepository   { return r.payments }
func (r *repos) TrackingRepository() ports.TrackingRepository { return r.ledger }
func (r *repos) UserRepository() ports.UserRepository         { return r.users }

type MockRollbacker struct{ mock.Mock }

func (m *MockRollbacker) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) RetrieveSession(ctx context.Context, id string) (ports.PaymentSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.PaymentSession), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req ports.CheckoutRequest) (ports.CheckoutSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}
