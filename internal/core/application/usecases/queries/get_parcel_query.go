package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery looks a parcel up by id.
type GetParcelQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.UUID { return q.parcelID }

// ParcelResponse is the parcel read model. Rider fields are empty for an
// unassigned parcel; DeliveryStatus is "unassigned" until the first transition.
type ParcelResponse struct {
	ID              string
	TrackingID      string
	ParcelName      string
	SenderName      string
	SenderEmail     string
	ReceiverName    string
	ReceiverAddress string
	Cost            float64
	Currency        string
	RiderID         string
	RiderEmail      string
	RiderName       string
	DeliveryStatus  string
	PaymentStatus   string
	CreatedAt       time.Time
}

// NewParcelResponse flattens p into its read model.
func NewParcelResponse(p *parcel.Parcel) ParcelResponse {
	d := p.Details()
	resp := ParcelResponse{
		ID:              p.ID().String(),
		TrackingID:      p.TrackingID().String(),
		ParcelName:      d.Name(),
		SenderName:      d.SenderName(),
		SenderEmail:     d.SenderEmail().String(),
		ReceiverName:    d.ReceiverName(),
		ReceiverAddress: d.ReceiverAddress(),
		Cost:            p.Cost().Major(),
		Currency:        p.Cost().Currency(),
		DeliveryStatus:  p.DeliveryStatus().String(),
		PaymentStatus:   p.PaymentStatus().String(),
		CreatedAt:       p.CreatedAt(),
	}
	if r := p.Rider(); r != nil {
		resp.RiderID = r.RiderID().String()
		resp.RiderEmail = r.Email().String()
		resp.RiderName = r.Name()
	}
	return resp
}
