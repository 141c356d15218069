package services_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReconciler(gateway ports.PaymentGateway) *services.PaymentReconciler {
	return services.NewPaymentReconciler(
		gateway,
		services.NewTrackingLedger(clock),
		services.ReconcilerConfig{
			DefaultCurrency:  "usd",
			RetrieveAttempts: 3,
			NewBackOff:       func() backoff.BackOff { return &backoff.ZeroBackOff{} },
		},
		clock,
		discardLogger(),
	)
}

func paidSession(p *parcel.Parcel) ports.PaymentSession {
	return ports.PaymentSession{
		ID:            "cs_test_1",
		TransactionID: "pi_1",
		Paid:          true,
		PaymentStatus: "paid",
		AmountMinor:   50000,
		Currency:      "usd",
		PayerEmail:    "a@x.com",
		Metadata: map[string]string{
			ports.MetadataParcelID:   p.ID().String(),
			ports.MetadataTrackingID: p.TrackingID().String(),
		},
	}
}

func notFound(what string) error {
	return errs.NewObjectNotFoundError(what, "x")
}

func TestPaymentReconciler_Settle(t *testing.T) {
	t.Run("should record payment, update parcel and append parcel_paid in order", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		session := paidSession(p)
		rs := newRepos()

		mock.InOrder(
			rs.payments.On("GetByTransactionID", ctx, "pi_1").Return(nil, notFound("payment")).Once(),
			rs.parcels.On("GetByTrackingID", ctx, p.TrackingID()).Return(p, nil).Once(),
			rs.payments.On("GetByTrackingID", ctx, p.TrackingID()).Return(nil, notFound("payment")).Once(),
			rs.payments.On("Add", ctx, mock.AnythingOfType("*payment.Record")).Return(nil).Once(),
			rs.parcels.On("Update", ctx, p).Return(nil).Once(),
			rs.ledger.On("HasStatus", ctx, p.TrackingID(), tracking.ParcelPaid).Return(false, nil).Once(),
			rs.ledger.On("Last", ctx, p.TrackingID()).Return(nil, nil).Once(),
			rs.ledger.On("Append", ctx, mock.Anything).Return(nil).Once(),
		)
		steps := services.NewSaga("confirmPayment")

		result, err := newReconciler(new(MockPaymentGateway)).Settle(ctx, steps, rs, session)

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.AlreadySettled)
		assert.Equal(t, "pi_1", result.TransactionID)
		assert.Equal(t, p.TrackingID().String(), result.TrackingID)
		require.NotNil(t, result.ParcelUpdate)
		assert.True(t, result.ParcelUpdate.Modified)
		assert.Equal(t, parcel.PaymentPaid, result.ParcelUpdate.PaymentStatus)
		assert.Equal(t, parcel.LabelPaid, result.ParcelUpdate.DeliveryStatus.Label())
		require.NotNil(t, result.PaymentRecord)
		assert.Equal(t, int64(50000), result.PaymentRecord.Amount().Minor())
		require.NotNil(t, result.LedgerEntry)
		assert.Equal(t, tracking.ParcelPaid, result.LedgerEntry.Status())
		assert.Equal(t,
			[]string{services.StepPaymentRecord, services.StepParcelUpdate, services.StepLedgerAppend},
			steps.Applied())
	})

	t.Run("already settled transaction writes nothing", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		amount, _ := kernel.NewMoney(50000, "usd")
		existing, err := payment.NewRecord("pi_1", p.TrackingID(), p.ID(), amount, "", fixedNow)
		require.NoError(t, err)
		rs := newRepos()
		rs.payments.On("GetByTransactionID", ctx, "pi_1").Return(existing, nil).Once()

		result, err := newReconciler(new(MockPaymentGateway)).Settle(ctx, services.NewSaga("c"), rs, paidSession(p))

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.AlreadySettled)
		assert.Equal(t, "pi_1", result.TransactionID)
		assert.Equal(t, p.TrackingID().String(), result.TrackingID)
		rs.payments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		rs.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		rs.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("unpaid session writes nothing", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		session := paidSession(p)
		session.Paid = false
		session.PaymentStatus = "unpaid"
		session.TransactionID = ""
		rs := newRepos()

		result, err := newReconciler(new(MockPaymentGateway)).Settle(ctx, services.NewSaga("c"), rs, session)

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Reason, "unpaid")
		rs.payments.AssertNotCalled(t, "GetByTransactionID", mock.Anything, mock.Anything)
		rs.payments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("paid session without reference is an external failure", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		session := paidSession(p)
		session.TransactionID = ""

		_, err := newReconciler(new(MockPaymentGateway)).Settle(ctx, services.NewSaga("c"), newRepos(), session)

		require.ErrorIs(t, err, errs.ErrExternalService)
	})

	t.Run("missing tracking metadata is an external failure", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		session := paidSession(p)
		delete(session.Metadata, ports.MetadataTrackingID)
		rs := newRepos()
		rs.payments.On("GetByTransactionID", ctx, "pi_1").Return(nil, notFound("payment")).Once()

		_, err := newReconciler(new(MockPaymentGateway)).Settle(ctx, services.NewSaga("c"), rs, session)

		require.ErrorIs(t, err, errs.ErrExternalService)
	})

	t.Run("parcel settled by another transaction is a conflict", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		amount, _ := kernel.NewMoney(50000, "usd")
		other, err := payment.NewRecord("pi_0", p.TrackingID(), p.ID(), amount, "", fixedNow)
		require.NoError(t, err)
		rs := newRepos()
		rs.payments.On("GetByTransactionID", ctx, "pi_1").Return(nil, notFound("payment")).Once()
		rs.parcels.On("GetByTrackingID", ctx, p.TrackingID()).Return(p, nil).Once()
		rs.payments.On("GetByTrackingID", ctx, p.TrackingID()).Return(other, nil).Once()

		_, err = newReconciler(new(MockPaymentGateway)).Settle(ctx, services.NewSaga("c"), rs, paidSession(p))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "pi_0")
	})

	t.Run("duplicate insert surfaces the storage sentinel", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		rs := newRepos()
		rs.payments.On("GetByTransactionID", ctx, "pi_1").Return(nil, notFound("payment")).Once()
		rs.parcels.On("GetByTrackingID", ctx, p.TrackingID()).Return(p, nil).Once()
		rs.payments.On("GetByTrackingID", ctx, p.TrackingID()).Return(nil, notFound("payment")).Once()
		rs.payments.On("Add", ctx, mock.Anything).
			Return(errs.NewConflictErrorWithCause("payment", "duplicate", ports.ErrTransactionRecorded)).Once()
		steps := services.NewSaga("c")

		_, err := newReconciler(new(MockPaymentGateway)).Settle(ctx, steps, rs, paidSession(p))

		require.ErrorIs(t, err, ports.ErrTransactionRecorded)
		assert.Empty(t, steps.Applied())
		rs.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPaymentReconciler_Repair(t *testing.T) {
	ctx := t.Context()
	p := newParcel(t)
	require.NoError(t, p.MarkPaid())
	amount, _ := kernel.NewMoney(50000, "usd")
	record, err := payment.NewRecord("pi_1", p.TrackingID(), p.ID(), amount, "", fixedNow)
	require.NoError(t, err)

	rs := newRepos()
	rs.parcels.On("GetByTrackingID", ctx, p.TrackingID()).Return(p, nil).Once()
	rs.ledger.On("HasStatus", ctx, p.TrackingID(), tracking.ParcelPaid).Return(false, nil).Once()
	rs.ledger.On("Last", ctx, p.TrackingID()).Return(nil, nil).Once()
	rs.ledger.On("Append", ctx, mock.Anything).Return(nil).Once()
	steps := services.NewSaga("repair")

	result, err := newReconciler(new(MockPaymentGateway)).Repair(ctx, steps, rs, record)

	require.NoError(t, err)
	assert.False(t, result.ParcelUpdate.Modified)
	require.NotNil(t, result.LedgerEntry)
	assert.Equal(t, []string{services.StepLedgerAppend}, steps.Applied())
	rs.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPaymentReconciler_Resolve(t *testing.T) {
	t.Run("retries gateway failures", func(t *testing.T) {
		ctx := t.Context()
		gateway := new(MockPaymentGateway)
		want := ports.PaymentSession{ID: "cs_1", Paid: true}
		gateway.On("RetrieveSession", ctx, "cs_1").
			Return(ports.PaymentSession{}, errs.NewExternalServiceError("stripe", "timeout")).Twice()
		gateway.On("RetrieveSession", ctx, "cs_1").Return(want, nil).Once()

		got, err := newReconciler(gateway).Resolve(ctx, "cs_1")

		require.NoError(t, err)
		assert.Equal(t, want, got)
		gateway.AssertNumberOfCalls(t, "RetrieveSession", 3)
	})

	t.Run("gives up after the attempt bound", func(t *testing.T) {
		ctx := t.Context()
		gateway := new(MockPaymentGateway)
		gateway.On("RetrieveSession", ctx, "cs_1").
			Return(ports.PaymentSession{}, errs.NewExternalServiceError("stripe", "timeout"))

		_, err := newReconciler(gateway).Resolve(ctx, "cs_1")

		require.ErrorIs(t, err, errs.ErrExternalService)
		gateway.AssertNumberOfCalls(t, "RetrieveSession", 3)
	})

	t.Run("does not retry other failures", func(t *testing.T) {
		ctx := t.Context()
		gateway := new(MockPaymentGateway)
		gateway.On("RetrieveSession", ctx, "cs_1").
			Return(ports.PaymentSession{}, errs.NewValueIsRequiredError("sessionId")).Once()

		_, err := newReconciler(gateway).Resolve(ctx, "cs_1")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.False(t, errors.Is(err, errs.ErrExternalService))
		gateway.AssertNumberOfCalls(t, "RetrieveSession", 1)
	})

	t.Run("does not retry a rejected request", func(t *testing.T) {
		ctx := t.Context()
		gateway := new(MockPaymentGateway)
		gateway.On("RetrieveSession", ctx, "cs_1").
			Return(ports.PaymentSession{}, errs.NewRequestRejectedError("stripe", "invalid api key", nil)).Once()

		_, err := newReconciler(gateway).Resolve(ctx, "cs_1")

		require.ErrorIs(t, err, errs.ErrRequestRejected)
		assert.Equal(t, errs.KindExternalService, errs.KindOf(err))
		gateway.AssertNumberOfCalls(t, "RetrieveSession", 1)
	})
}
