package parcel

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
	// ErrParcelNameIsRequired is returned for a parcel without a name.
	ErrParcelNameIsRequired = errs.NewValueIsRequiredError("parcelName")
	// ErrRiderNameIsRequired is returned for an assignment without a rider name.
	ErrRiderNameIsRequired = errs.NewValueIsRequiredError("riderName")
)

// Details are the sender-supplied descriptive fields of a parcel.
type Details struct {
	name            string
	senderName      string
	senderEmail     kernel.Email
	receiverName    string
	receiverAddress string
	guard           guard.ConstructorGuard
}

// NewDetails validates the sender-supplied fields. The parcel name and the
// sender email are required, the rest is optional.
func NewDetails(name, senderName, senderEmail, receiverName, receiverAddress string) (Details, error) {
	d := Details{
		name:            strings.TrimSpace(name),
		senderName:      strings.TrimSpace(senderName),
		receiverName:    strings.TrimSpace(receiverName),
		receiverAddress: strings.TrimSpace(receiverAddress),
		guard:           guard.NewConstructorGuard(),
	}

	var nameErr error
	if d.name == "" {
		nameErr = ErrParcelNameIsRequired
	}

	email, emailErr := kernel.NewEmail(senderEmail)
	if err := errors.Join(nameErr, emailErr); err != nil {
		return Details{}, err
	}

	d.senderEmail = email
	return d, nil
}

func (d Details) Name() string              { return d.name }
func (d Details) SenderName() string        { return d.senderName }
func (d Details) SenderEmail() kernel.Email { return d.senderEmail }
func (d Details) ReceiverName() string      { return d.receiverName }
func (d Details) ReceiverAddress() string   { return d.receiverAddress }

func (d Details) Validate() error {
	return d.guard.Validate(errs.NewValueIsRequiredError("Details must be created via NewDetails"))
}

// RiderAssignment is the rider identity recorded on a parcel.
type RiderAssignment struct {
	riderID kernel.UUID
	email   kernel.Email
	name    string
}

func NewRiderAssignment(riderID kernel.UUID, email kernel.Email, name string) (RiderAssignment, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = ErrRiderNameIsRequired
	}

	if err := errors.Join(riderID.Validate(), email.Validate(), nameErr); err != nil {
		return RiderAssignment{}, err
	}

	return RiderAssignment{riderID: riderID, email: email, name: strings.TrimSpace(name)}, nil
}

func (a RiderAssignment) RiderID() kernel.UUID { return a.riderID }
func (a RiderAssignment) Email() kernel.Email  { return a.email }
func (a RiderAssignment) Name() string         { return a.name }

// Parcel is the aggregate root of a shipment. All mutations go through the
// lifecycle methods below; fields are never written directly.
//
// Invariants:
//   - id, tracking identifier and creation time never change
//   - payment is settled at most once
//   - a rider is recorded whenever the parcel was assigned
type Parcel struct {
	id             kernel.UUID
	trackingID     kernel.TrackingID
	details        Details
	cost           kernel.Money
	rider          *RiderAssignment
	deliveryStatus DeliveryStatus
	paymentStatus  PaymentStatus
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewParcel creates an unpaid parcel with no delivery status yet.
//
// Example:
//
//	details, _ := parcel.NewDetails("Box A", "Alice", "a@x.com", "", "")
//	cost, _ := kernel.NewMoneyFromMajor(500, "usd")
//	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, details, cost, time.Now().UTC())
func NewParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	details Details,
	cost kernel.Money,
	createdAt time.Time,
) (*Parcel, error) {
	return RestoreParcel(id, trackingID, details, cost, nil, StatusCreated(), Unpaid, createdAt)
}

// RestoreParcel rebuilds a parcel from persistent storage.
func RestoreParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	details Details,
	cost kernel.Money,
	rider *RiderAssignment,
	deliveryStatus DeliveryStatus,
	paymentStatus PaymentStatus,
	createdAt time.Time,
) (*Parcel, error) {
	var createdAtErr error
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		details.Validate(),
		cost.Validate(),
		createdAtErr,
	); err != nil {
		return nil, err
	}

	p := &Parcel{
		id:             id,
		trackingID:     trackingID,
		details:        details,
		cost:           cost,
		deliveryStatus: deliveryStatus,
		paymentStatus:  paymentStatus,
		createdAt:      createdAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}
	if rider != nil {
		r := *rider
		p.rider = &r
	}

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID                { return p.id }
func (p *Parcel) TrackingID() kernel.TrackingID  { return p.trackingID }
func (p *Parcel) Details() Details               { return p.details }
func (p *Parcel) Cost() kernel.Money             { return p.cost }
func (p *Parcel) DeliveryStatus() DeliveryStatus { return p.deliveryStatus }
func (p *Parcel) PaymentStatus() PaymentStatus   { return p.paymentStatus }
func (p *Parcel) CreatedAt() time.Time           { return p.createdAt }

// Rider returns the current assignment or nil when the parcel was never assigned.
func (p *Parcel) Rider() *RiderAssignment {
	if p.rider == nil {
		return nil
	}
	r := *p.rider
	return &r
}

func (p *Parcel) IsPaid() bool {
	return p.paymentStatus == PaymentPaid
}

// MarkPaid settles the parcel: payment becomes paid and the parcel waits for pickup.
func (p *Parcel) MarkPaid() error {
	if p.IsPaid() {
		return errs.NewConflictError("parcel "+p.trackingID.String(), "payment already settled")
	}

	p.paymentStatus = PaymentPaid
	p.deliveryStatus = StatusPaid()
	return nil
}

// AssignRider records the rider and moves the parcel to driver_assigned.
func (p *Parcel) AssignRider(assignment RiderAssignment) error {
	if err := assignment.riderID.Validate(); err != nil {
		return err
	}
	if p.deliveryStatus.IsDelivered() {
		return errs.NewConflictError("parcel "+p.trackingID.String(), "already delivered")
	}

	p.rider = &assignment
	p.deliveryStatus = StatusAssigned()
	return nil
}

// SetDeliveryStatus applies a caller-supplied status unconditionally.
func (p *Parcel) SetDeliveryStatus(status DeliveryStatus) error {
	if status.Kind() == Created {
		return errs.NewValueIsRequiredError("deliveryStatus")
	}

	p.deliveryStatus = status
	return nil
}
