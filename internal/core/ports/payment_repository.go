package ports

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/payment"
)

// ErrTransactionRecorded is the cause of the conflict returned by Add when a
// record for the transaction id, or for the tracking id, already exists.
var ErrTransactionRecorded = errors.New("payment already recorded")

// PaymentRepository stores settled payments. transaction_id and tracking_id
// are both unique at the storage layer, which serializes concurrent settlements.
type PaymentRepository interface {
	Add(ctx context.Context, record *payment.Record) error

	// GetByTransactionID returns errs.ObjectNotFoundError when nothing was settled
	// under the transaction id.
	GetByTransactionID(ctx context.Context, transactionID string) (*payment.Record, error)

	GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*payment.Record, error)

	// GetAllUnreconciled returns records whose parcel is not marked paid or whose
	// ledger lacks the parcel_paid entry, oldest first, at most limit of them.
	GetAllUnreconciled(ctx context.Context, limit int) ([]*payment.Record, error)
}
