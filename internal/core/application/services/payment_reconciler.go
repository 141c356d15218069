package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/cenkalti/backoff/v5"
)

const gatewayService = "payment gateway"

// SettlementRepositories is the part of a unit of work a settlement writes to.
type SettlementRepositories interface {
	ParcelRepository() ports.ParcelRepository
	PaymentRepository() ports.PaymentRepository
	TrackingRepository() ports.TrackingRepository
}

// ReconcilerConfig tunes gateway retrieval.
type ReconcilerConfig struct {
	// DefaultCurrency is used when the gateway omits the session currency.
	DefaultCurrency string
	// RetrieveAttempts bounds session retrieval retries on gateway failures.
	RetrieveAttempts uint
	// NewBackOff builds the delay policy between attempts.
	NewBackOff func() backoff.BackOff
}

// PaymentReconciler turns a checkout session reference into a settled,
// idempotent payment record.
//
// The transaction id is the idempotency key: an existing record for it is
// returned as already settled before anything is written, and the unique index
// on payments.transaction_id decides concurrent settlements.
type PaymentReconciler struct {
	gateway ports.PaymentGateway
	ledger  *TrackingLedger
	cfg     ReconcilerConfig
	now     func() time.Time
	logger  *slog.Logger
}

func NewPaymentReconciler(
	gateway ports.PaymentGateway,
	ledger *TrackingLedger,
	cfg ReconcilerConfig,
	now func() time.Time,
	logger *slog.Logger,
) *PaymentReconciler {
	if cfg.RetrieveAttempts == 0 {
		cfg.RetrieveAttempts = 3
	}
	if cfg.NewBackOff == nil {
		cfg.NewBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "usd"
	}
	if now == nil {
		now = time.Now
	}

	return &PaymentReconciler{
		gateway: gateway,
		ledger:  ledger,
		cfg:     cfg,
		now:     now,
		logger:  logger.With("component", "payment_reconciler"),
	}
}

// Resolve fetches the session from the gateway. Gateway failures are retried
// unless the gateway rejected the request itself; anything else fails
// immediately.
func (r *PaymentReconciler) Resolve(ctx context.Context, sessionID string) (ports.PaymentSession, error) {
	operation := func() (ports.PaymentSession, error) {
		session, err := r.gateway.RetrieveSession(ctx, sessionID)
		if err != nil && (!errors.Is(err, errs.ErrExternalService) || errors.Is(err, errs.ErrRequestRejected)) {
			return ports.PaymentSession{}, backoff.Permanent(err)
		}
		return session, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(r.cfg.NewBackOff()),
		backoff.WithMaxTries(r.cfg.RetrieveAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.WarnContext(ctx, "retrying session retrieval", "session_id", sessionID, "in", next, "error", err)
		}),
	)
}

// FindSettled returns the result for a transaction that already has a record.
// ok is false when nothing was settled under transactionID.
func (r *PaymentReconciler) FindSettled(
	ctx context.Context,
	repos SettlementRepositories,
	transactionID string,
) (result PaymentConfirmationResult, ok bool, err error) {
	if transactionID == "" {
		return PaymentConfirmationResult{}, false, nil
	}

	existing, err := repos.PaymentRepository().GetByTransactionID(ctx, transactionID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return PaymentConfirmationResult{}, false, nil
	}
	if err != nil {
		return PaymentConfirmationResult{}, false, err
	}

	return PaymentConfirmationResult{
		Success:        true,
		AlreadySettled: true,
		TrackingID:     existing.TrackingID().String(),
		TransactionID:  existing.TransactionID(),
		PaymentRecord:  existing,
	}, true, nil
}

// Settle records a paid session: the payment record, the parcel update and the
// parcel_paid ledger entry, in that order, as steps of one saga. Unpaid
// sessions and already settled transactions write nothing.
func (r *PaymentReconciler) Settle(
	ctx context.Context,
	steps *Saga,
	repos SettlementRepositories,
	session ports.PaymentSession,
) (PaymentConfirmationResult, error) {
	if settled, ok, err := r.FindSettled(ctx, repos, session.TransactionID); err != nil || ok {
		return settled, err
	}

	if !session.Paid {
		return PaymentConfirmationResult{
			Success:       false,
			Reason:        fmt.Sprintf("payment status is %q", session.PaymentStatus),
			TrackingID:    session.Metadata[ports.MetadataTrackingID],
			TransactionID: session.TransactionID,
		}, nil
	}
	if session.TransactionID == "" {
		return PaymentConfirmationResult{}, errs.NewExternalServiceError(gatewayService, "paid session "+session.ID+" carries no payment reference")
	}

	p, err := r.parcelOf(ctx, repos, session)
	if err != nil {
		return PaymentConfirmationResult{}, err
	}

	other, err := repos.PaymentRepository().GetByTrackingID(ctx, p.TrackingID())
	switch {
	case err == nil:
		return PaymentConfirmationResult{}, errs.NewConflictError(
			"parcel "+p.TrackingID().String(),
			"already settled by transaction "+other.TransactionID(),
		)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return PaymentConfirmationResult{}, err
	}

	currency := session.Currency
	if currency == "" {
		currency = r.cfg.DefaultCurrency
	}
	amount, err := kernel.NewMoney(session.AmountMinor, currency)
	if err != nil {
		return PaymentConfirmationResult{}, errs.NewExternalServiceErrorWithCause(gatewayService, "unparseable amount", err)
	}

	record, err := payment.NewRecord(session.TransactionID, p.TrackingID(), p.ID(), amount, session.PayerEmail, r.now())
	if err != nil {
		return PaymentConfirmationResult{}, err
	}

	if err = steps.Step(StepPaymentRecord, func() error {
		return repos.PaymentRepository().Add(ctx, record)
	}); err != nil {
		return PaymentConfirmationResult{}, err
	}

	parcelUpdate, entry, err := r.applyToParcel(ctx, steps, repos, p)
	if err != nil {
		return PaymentConfirmationResult{}, err
	}

	r.logger.InfoContext(ctx, "payment settled",
		"tracking_id", p.TrackingID().String(),
		"transaction_id", record.TransactionID(),
		"amount", amount.String(),
	)

	return PaymentConfirmationResult{
		Success:       true,
		TrackingID:    p.TrackingID().String(),
		TransactionID: record.TransactionID(),
		ParcelUpdate:  &parcelUpdate,
		PaymentRecord: record,
		LedgerEntry:   entry,
	}, nil
}

// Repair completes a settlement whose record exists but whose parcel update or
// ledger entry is missing. It is a no-op for a fully reconciled record.
func (r *PaymentReconciler) Repair(
	ctx context.Context,
	steps *Saga,
	repos SettlementRepositories,
	record *payment.Record,
) (PaymentConfirmationResult, error) {
	p, err := repos.ParcelRepository().GetByTrackingID(ctx, record.TrackingID())
	if err != nil {
		return PaymentConfirmationResult{}, err
	}

	parcelUpdate, entry, err := r.applyToParcel(ctx, steps, repos, p)
	if err != nil {
		return PaymentConfirmationResult{}, err
	}

	return PaymentConfirmationResult{
		Success:       true,
		TrackingID:    record.TrackingID().String(),
		TransactionID: record.TransactionID(),
		ParcelUpdate:  &parcelUpdate,
		PaymentRecord: record,
		LedgerEntry:   entry,
	}, nil
}

// applyToParcel marks the parcel paid unless it already is, then appends
// parcel_paid unless the ledger already has it.
func (r *PaymentReconciler) applyToParcel(
	ctx context.Context,
	steps *Saga,
	repos SettlementRepositories,
	p *parcel.Parcel,
) (ParcelUpdateResult, *tracking.Entry, error) {
	modified := false
	if !p.IsPaid() {
		if err := p.MarkPaid(); err != nil {
			return ParcelUpdateResult{}, nil, err
		}
		if err := steps.Step(StepParcelUpdate, func() error {
			return repos.ParcelRepository().Update(ctx, p)
		}); err != nil {
			return ParcelUpdateResult{}, nil, err
		}
		modified = true
	}

	has, err := repos.TrackingRepository().HasStatus(ctx, p.TrackingID(), tracking.ParcelPaid)
	if err != nil {
		return ParcelUpdateResult{}, nil, err
	}
	if has {
		return NewParcelUpdateResult(p, modified), nil, nil
	}

	entry, err := r.ledger.Append(ctx, steps, repos.TrackingRepository(), p.TrackingID(), tracking.ParcelPaid)
	if err != nil {
		return ParcelUpdateResult{}, nil, err
	}
	return NewParcelUpdateResult(p, modified), &entry, nil
}

// parcelOf finds the parcel named by the session metadata. The tracking id is
// required; a parcel id, when present, must name the same parcel.
func (r *PaymentReconciler) parcelOf(
	ctx context.Context,
	repos SettlementRepositories,
	session ports.PaymentSession,
) (*parcel.Parcel, error) {
	raw := session.Metadata[ports.MetadataTrackingID]
	if raw == "" {
		return nil, errs.NewExternalServiceError(gatewayService, "session "+session.ID+" has no trackingId metadata")
	}
	trackingID, err := kernel.NewTrackingID(raw)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(gatewayService, "session "+session.ID+" has a malformed trackingId", err)
	}

	p, err := repos.ParcelRepository().GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	if rawParcelID := session.Metadata[ports.MetadataParcelID]; rawParcelID != "" && rawParcelID != p.ID().String() {
		return nil, errs.NewExternalServiceError(
			gatewayService,
			fmt.Sprintf("session %s names parcel %s but tracking id %s belongs to %s", session.ID, rawParcelID, raw, p.ID()),
		)
	}
	return p, nil
}
