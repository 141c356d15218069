// Package payment holds the settled payment record. A record is created at
// most once per gateway transaction identifier, which is the idempotency key of
// settlement.
package payment

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is an immutable settled payment.
type Record struct {
	transactionID string
	trackingID    kernel.TrackingID
	parcelID      kernel.UUID
	amount        kernel.Money
	payerEmail    string
	settledAt     time.Time

	guard guard.ConstructorGuard
}

// NewRecord validates a settlement. The payer email is whatever the gateway
// reported and may be empty.
func NewRecord(
	transactionID string,
	trackingID kernel.TrackingID,
	parcelID kernel.UUID,
	amount kernel.Money,
	payerEmail string,
	settledAt time.Time,
) (*Record, error) {
	var txErr, settledErr error
	if strings.TrimSpace(transactionID) == "" {
		txErr = errs.NewValueIsRequiredError("transactionId")
	}
	if settledAt.IsZero() {
		settledErr = errs.NewValueIsRequiredError("paidAt")
	}

	if err := errors.Join(txErr, trackingID.Validate(), parcelID.Validate(), amount.Validate(), settledErr); err != nil {
		return nil, err
	}

	return &Record{
		transactionID: strings.TrimSpace(transactionID),
		trackingID:    trackingID,
		parcelID:      parcelID,
		amount:        amount,
		payerEmail:    strings.ToLower(strings.TrimSpace(payerEmail)),
		settledAt:     settledAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) TransactionID() string         { return r.transactionID }
func (r *Record) TrackingID() kernel.TrackingID { return r.trackingID }
func (r *Record) ParcelID() kernel.UUID         { return r.parcelID }
func (r *Record) Amount() kernel.Money          { return r.amount }
func (r *Record) PayerEmail() string            { return r.payerEmail }
func (r *Record) SettledAt() time.Time          { return r.settledAt }
