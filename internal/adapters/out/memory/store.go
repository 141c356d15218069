// Package memory is a process-local store behind the same unit of work
// contract as the postgres adapter. It backs local runs and end-to-end tests.
//
// A unit of work that has begun holds the store lock until Commit or Rollback,
// so transactions are serialized. Rollback restores the snapshot taken by
// Begin. Repositories used without Begin lock per call.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
)

// ErrInvalidTransaction is returned by Commit and Rollback without an active transaction.
var ErrInvalidTransaction = errors.New("no active transaction")

// state holds aggregates keyed by id. Stored aggregates are private copies;
// nothing outside the store mutates them.
type state struct {
	parcels           map[string]*parcel.Parcel
	parcelByTracking  map[string]string
	riders            map[string]*rider.Rider
	riderByEmail      map[string]string
	users             map[string]*user.User
	payments          map[string]*payment.Record
	paymentByTracking map[string]string
	entries           []tracking.Entry
}

func newState() state {
	return state{
		parcels:           make(map[string]*parcel.Parcel),
		parcelByTracking:  make(map[string]string),
		riders:            make(map[string]*rider.Rider),
		riderByEmail:      make(map[string]string),
		users:             make(map[string]*user.User),
		payments:          make(map[string]*payment.Record),
		paymentByTracking: make(map[string]string),
	}
}

func (s state) clone() state {
	return state{
		parcels:           maps.Clone(s.parcels),
		parcelByTracking:  maps.Clone(s.parcelByTracking),
		riders:            maps.Clone(s.riders),
		riderByEmail:      maps.Clone(s.riderByEmail),
		users:             maps.Clone(s.users),
		payments:          maps.Clone(s.payments),
		paymentByTracking: maps.Clone(s.paymentByTracking),
		entries:           slices.Clone(s.entries),
	}
}

// Store is the shared data of every unit of work it creates.
type Store struct {
	mu   sync.Mutex // Held for the whole of a begun unit of work
	data state
}

func NewStore() *Store {
	return &Store{data: newState()}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is a serialized transaction over the Store.
type UnitOfWork struct {
	store    *Store
	active   bool
	snapshot state
}

// Begin takes the store lock and snapshots the data. Calling it twice is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.snapshot = u.store.data.clone()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrInvalidTransaction
	}
	u.end()
	return nil
}

// Rollback restores the data captured by Begin.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrInvalidTransaction
	}
	u.store.data = u.snapshot
	u.end()
	return nil
}

func (u *UnitOfWork) end() {
	u.snapshot = state{}
	u.active = false
	u.store.mu.Unlock()
}

// with runs fn against the data, taking the lock unless the unit of work
// already holds it.
func (u *UnitOfWork) with(fn func(s *state) error) error {
	if !u.active {
		u.store.mu.Lock()
		defer u.store.mu.Unlock()
	}
	return fn(&u.store.data)
}

func (u *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return &parcelRepository{uow: u}
}

func (u *UnitOfWork) RiderRepository() ports.RiderRepository {
	return &riderRepository{uow: u}
}

func (u *UnitOfWork) PaymentRepository() ports.PaymentRepository {
	return &paymentRepository{uow: u}
}

func (u *UnitOfWork) TrackingRepository() ports.TrackingRepository {
	return &trackingRepository{uow: u}
}

func (u *UnitOfWork) UserRepository() ports.UserRepository {
	return &userRepository{uow: u}
}
