package memory

import (
	"context"
	"slices"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

func cloneParcel(p *parcel.Parcel) (*parcel.Parcel, error) {
	return parcel.RestoreParcel(p.ID(), p.TrackingID(), p.Details(), p.Cost(), p.Rider(), p.DeliveryStatus(), p.PaymentStatus(), p.CreatedAt())
}

func cloneRider(r *rider.Rider) (*rider.Rider, error) {
	return rider.RestoreRider(r.ID(), r.Email(), r.Name(), r.District(), r.Status(), r.WorkStatus(), r.CreatedAt())
}

func cloneUser(u *user.User) (*user.User, error) {
	return user.RestoreUser(u.ID(), u.Email(), u.DisplayName(), u.Role(), u.CreatedAt())
}

type parcelRepository struct {
	uow *UnitOfWork
}

func (r *parcelRepository) Add(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneParcel(aggregate)
	if err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		trackingID := aggregate.TrackingID().String()
		if _, taken := s.parcelByTracking[trackingID]; taken {
			return errs.NewConflictErrorWithCause("parcel "+trackingID, "tracking id already taken", ports.ErrTrackingIDTaken)
		}
		if _, exists := s.parcels[aggregate.ID().String()]; exists {
			return errs.NewConflictError("parcel "+aggregate.ID().String(), "already exists")
		}
		s.parcels[aggregate.ID().String()] = stored
		s.parcelByTracking[trackingID] = aggregate.ID().String()
		return nil
	})
}

func (r *parcelRepository) Update(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneParcel(aggregate)
	if err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		if _, exists := s.parcels[aggregate.ID().String()]; !exists {
			return errs.NewObjectNotFoundError("parcelId", aggregate.ID().String())
		}
		s.parcels[aggregate.ID().String()] = stored
		return nil
	})
}

func (r *parcelRepository) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *parcel.Parcel
	err := r.uow.with(func(s *state) error {
		p, ok := s.parcels[id.String()]
		if !ok {
			return errs.NewObjectNotFoundError("parcelId", id.String())
		}
		var err error
		found, err = cloneParcel(p)
		return err
	})
	return found, err
}

func (r *parcelRepository) GetByTrackingID(_ context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var found *parcel.Parcel
	err := r.uow.with(func(s *state) error {
		id, ok := s.parcelByTracking[trackingID.String()]
		if !ok {
			return errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		var err error
		found, err = cloneParcel(s.parcels[id])
		return err
	})
	return found, err
}

func (r *parcelRepository) CountUndeliveredByRider(_ context.Context, riderID kernel.UUID) (int64, error) {
	var count int64
	err := r.uow.with(func(s *state) error {
		for _, p := range s.parcels {
			if a := p.Rider(); a != nil && a.RiderID().IsEqual(riderID) && !p.DeliveryStatus().IsDelivered() {
				count++
			}
		}
		return nil
	})
	return count, err
}

type riderRepository struct {
	uow *UnitOfWork
}

func (r *riderRepository) Add(_ context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneRider(aggregate)
	if err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		email := aggregate.Email().String()
		if _, taken := s.riderByEmail[email]; taken {
			return errs.NewConflictError("rider "+email, "already registered")
		}
		s.riders[aggregate.ID().String()] = stored
		s.riderByEmail[email] = aggregate.ID().String()
		return nil
	})
}

func (r *riderRepository) Update(_ context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneRider(aggregate)
	if err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		if _, exists := s.riders[aggregate.ID().String()]; !exists {
			return errs.NewObjectNotFoundError("riderId", aggregate.ID().String())
		}
		s.riders[aggregate.ID().String()] = stored
		return nil
	})
}

func (r *riderRepository) Get(_ context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *rider.Rider
	err := r.uow.with(func(s *state) error {
		rd, ok := s.riders[id.String()]
		if !ok {
			return errs.NewObjectNotFoundError("riderId", id.String())
		}
		var err error
		found, err = cloneRider(rd)
		return err
	})
	return found, err
}

// GetForUpdate is Get: an active unit of work already holds the store.
func (r *riderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.Get(ctx, id)
}

func (r *riderRepository) GetAllInDelivery(_ context.Context) ([]*rider.Rider, error) {
	var riders []*rider.Rider
	err := r.uow.with(func(s *state) error {
		for _, rd := range s.riders {
			if !rd.IsInDelivery() {
				continue
			}
			c, err := cloneRider(rd)
			if err != nil {
				return err
			}
			riders = append(riders, c)
		}
		return nil
	})
	slices.SortFunc(riders, func(a, b *rider.Rider) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	return riders, err
}

type userRepository struct {
	uow *UnitOfWork
}

func (r *userRepository) Add(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneUser(aggregate)
	if err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		email := aggregate.Email().String()
		if _, taken := s.users[email]; taken {
			return errs.NewConflictErrorWithCause("user "+email, "email already registered", ports.ErrEmailTaken)
		}
		s.users[email] = stored
		return nil
	})
}

func (r *userRepository) Update(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneUser(aggregate)
	if err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		current, exists := s.users[aggregate.Email().String()]
		if !exists || !current.ID().IsEqual(aggregate.ID()) {
			return errs.NewObjectNotFoundError("userId", aggregate.ID().String())
		}
		s.users[aggregate.Email().String()] = stored
		return nil
	})
}

func (r *userRepository) GetByEmail(_ context.Context, email kernel.Email) (*user.User, error) {
	var found *user.User
	err := r.uow.with(func(s *state) error {
		u, ok := s.users[email.String()]
		if !ok {
			return errs.NewObjectNotFoundError("email", email.String())
		}
		var err error
		found, err = cloneUser(u)
		return err
	})
	return found, err
}

// paymentRepository shares records: payment.Record has no mutators.
type paymentRepository struct {
	uow *UnitOfWork
}

func (r *paymentRepository) Add(_ context.Context, record *payment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	return r.uow.with(func(s *state) error {
		_, txTaken := s.payments[record.TransactionID()]
		_, parcelTaken := s.paymentByTracking[record.TrackingID().String()]
		if txTaken || parcelTaken {
			return errs.NewConflictErrorWithCause("payment "+record.TransactionID(), "already recorded", ports.ErrTransactionRecorded)
		}
		s.payments[record.TransactionID()] = record
		s.paymentByTracking[record.TrackingID().String()] = record.TransactionID()
		return nil
	})
}

func (r *paymentRepository) GetByTransactionID(_ context.Context, transactionID string) (*payment.Record, error) {
	var found *payment.Record
	err := r.uow.with(func(s *state) error {
		rec, ok := s.payments[transactionID]
		if !ok {
			return errs.NewObjectNotFoundError("transactionId", transactionID)
		}
		found = rec
		return nil
	})
	return found, err
}

func (r *paymentRepository) GetByTrackingID(_ context.Context, trackingID kernel.TrackingID) (*payment.Record, error) {
	var found *payment.Record
	err := r.uow.with(func(s *state) error {
		tx, ok := s.paymentByTracking[trackingID.String()]
		if !ok {
			return errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		found = s.payments[tx]
		return nil
	})
	return found, err
}

func (r *paymentRepository) GetAllUnreconciled(_ context.Context, limit int) ([]*payment.Record, error) {
	var records []*payment.Record
	err := r.uow.with(func(s *state) error {
		for _, rec := range s.payments {
			id, ok := s.parcelByTracking[rec.TrackingID().String()]
			if !ok {
				continue
			}
			if !s.parcels[id].IsPaid() || !s.hasStatus(rec.TrackingID(), tracking.ParcelPaid) {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *payment.Record) int { return a.SettledAt().Compare(b.SettledAt()) })
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

type trackingRepository struct {
	uow *UnitOfWork
}

func (r *trackingRepository) Append(_ context.Context, entry tracking.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.uow.with(func(s *state) error {
		s.entries = append(s.entries, entry)
		return nil
	})
}

func (r *trackingRepository) Last(_ context.Context, trackingID kernel.TrackingID) (*tracking.Entry, error) {
	var last *tracking.Entry
	err := r.uow.with(func(s *state) error {
		for i := len(s.entries) - 1; i >= 0; i-- {
			if s.entries[i].TrackingID().IsEqual(trackingID) {
				e := s.entries[i]
				last = &e
				return nil
			}
		}
		return nil
	})
	return last, err
}

// History returns entries in append order, which the lock makes identical to
// commit order.
func (r *trackingRepository) History(_ context.Context, trackingID kernel.TrackingID) ([]tracking.Entry, error) {
	history := make([]tracking.Entry, 0)
	err := r.uow.with(func(s *state) error {
		for _, e := range s.entries {
			if e.TrackingID().IsEqual(trackingID) {
				history = append(history, e)
			}
		}
		return nil
	})
	return history, err
}

func (r *trackingRepository) HasStatus(_ context.Context, trackingID kernel.TrackingID, status string) (bool, error) {
	var has bool
	err := r.uow.with(func(s *state) error {
		has = s.hasStatus(trackingID, status)
		return nil
	})
	return has, err
}

func (r *trackingRepository) DeliveriesPerDay(_ context.Context, riderEmail kernel.Email) ([]ports.DailyDeliveries, error) {
	perDay := make(map[time.Time]map[string]struct{})
	err := r.uow.with(func(s *state) error {
		delivered := make(map[string]struct{})
		for _, p := range s.parcels {
			if a := p.Rider(); a != nil && a.Email().IsEqual(riderEmail) && p.DeliveryStatus().IsDelivered() {
				delivered[p.TrackingID().String()] = struct{}{}
			}
		}

		for _, e := range s.entries {
			if e.Status() != tracking.ParcelDelivered {
				continue
			}
			trackingID := e.TrackingID().String()
			if _, ok := delivered[trackingID]; !ok {
				continue
			}
			at := e.CreatedAt().UTC()
			day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
			if perDay[day] == nil {
				perDay[day] = make(map[string]struct{})
			}
			perDay[day][trackingID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := make([]ports.DailyDeliveries, 0, len(perDay))
	for day, parcels := range perDay {
		report = append(report, ports.DailyDeliveries{Date: day, Count: int64(len(parcels))})
	}
	slices.SortFunc(report, func(a, b ports.DailyDeliveries) int { return a.Date.Compare(b.Date) })
	return report, nil
}

func (s *state) hasStatus(trackingID kernel.TrackingID, status string) bool {
	for _, e := range s.entries {
		if e.Status() == status && e.TrackingID().IsEqual(trackingID) {
			return true
		}
	}
	return false
}
