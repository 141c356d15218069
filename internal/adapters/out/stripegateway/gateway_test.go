package stripegateway

import (
	"context"
	"net/http"
	"testing"
	"time"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type MockSessionClient struct {
	mock.Mock
}

func (m *MockSessionClient) Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	args := m.Called(id, params)
	s, _ := args.Get(0).(*stripe.CheckoutSession)
	return s, args.Error(1)
}

func (m *MockSessionClient) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	args := m.Called(params)
	s, _ := args.Get(0).(*stripe.CheckoutSession)
	return s, args.Error(1)
}

func TestGateway_RetrieveSession(t *testing.T) {
	t.Run("maps a paid session", func(t *testing.T) {
		sessions := &MockSessionClient{}
		sessions.On("Get", "cs_1", mock.MatchedBy(func(p *stripe.CheckoutSessionParams) bool {
			_, hasDeadline := p.Context.Deadline()
			return hasDeadline
		})).Return(&stripe.CheckoutSession{
			ID:              "cs_1",
			PaymentStatus:   stripe.CheckoutSessionPaymentStatusPaid,
			PaymentIntent:   &stripe.PaymentIntent{ID: "pi_1"},
			AmountTotal:     50000,
			Currency:        stripe.CurrencyUSD,
			CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "a@x.com"},
			Metadata:        map[string]string{ports.MetadataTrackingID: "PRCL-20240115-AB12CD"},
		}, nil)

		session, err := newGateway(sessions, time.Second).RetrieveSession(t.Context(), "cs_1")

		require.NoError(t, err)
		assert.True(t, session.Paid)
		assert.Equal(t, "pi_1", session.TransactionID)
		assert.Equal(t, int64(50000), session.AmountMinor)
		assert.Equal(t, "usd", session.Currency)
		assert.Equal(t, "a@x.com", session.PayerEmail)
		assert.Equal(t, "PRCL-20240115-AB12CD", session.Metadata[ports.MetadataTrackingID])
		sessions.AssertExpectations(t)
	})

	t.Run("unpaid session has no transaction", func(t *testing.T) {
		sessions := &MockSessionClient{}
		sessions.On("Get", "cs_2", mock.Anything).Return(&stripe.CheckoutSession{
			ID:            "cs_2",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
			CustomerEmail: "a@x.com",
		}, nil)

		session, err := newGateway(sessions, time.Second).RetrieveSession(t.Context(), "cs_2")

		require.NoError(t, err)
		assert.False(t, session.Paid)
		assert.Equal(t, "unpaid", session.PaymentStatus)
		assert.Empty(t, session.TransactionID)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		sessions := &MockSessionClient{}
		sessions.On("Get", "cs_missing", mock.Anything).
			Return(nil, &stripe.Error{HTTPStatusCode: http.StatusNotFound, Msg: "No such checkout.session"})

		_, err := newGateway(sessions, time.Second).RetrieveSession(t.Context(), "cs_missing")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("transport failure is external", func(t *testing.T) {
		sessions := &MockSessionClient{}
		sessions.On("Get", "cs_3", mock.Anything).Return(nil, context.DeadlineExceeded)

		_, err := newGateway(sessions, time.Second).RetrieveSession(t.Context(), "cs_3")

		require.ErrorIs(t, err, errs.ErrExternalService)
		assert.Equal(t, errs.KindExternalService, errs.KindOf(err))
		assert.NotErrorIs(t, err, errs.ErrRequestRejected)
	})

	t.Run("client errors are rejected requests", func(t *testing.T) {
		for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
			sessions := &MockSessionClient{}
			sessions.On("Get", "cs_4", mock.Anything).
				Return(nil, &stripe.Error{HTTPStatusCode: code, Msg: "refused"})

			_, err := newGateway(sessions, time.Second).RetrieveSession(t.Context(), "cs_4")

			require.ErrorIs(t, err, errs.ErrRequestRejected, "status %d", code)
			assert.Equal(t, errs.KindExternalService, errs.KindOf(err))
		}
	})

	t.Run("rate limits and server errors stay retryable", func(t *testing.T) {
		for _, code := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
			sessions := &MockSessionClient{}
			sessions.On("Get", "cs_5", mock.Anything).
				Return(nil, &stripe.Error{HTTPStatusCode: code, Msg: "try later"})

			_, err := newGateway(sessions, time.Second).RetrieveSession(t.Context(), "cs_5")

			require.ErrorIs(t, err, errs.ErrExternalService, "status %d", code)
			assert.NotErrorIs(t, err, errs.ErrRequestRejected, "status %d", code)
		}
	})
}

func TestGateway_CreateCheckoutSession(t *testing.T) {
	sessions := &MockSessionClient{}
	sessions.On("New", mock.MatchedBy(func(p *stripe.CheckoutSessionParams) bool {
		item := p.LineItems[0]
		return *p.Mode == "payment" &&
			*item.PriceData.UnitAmount == 50000 &&
			*item.PriceData.Currency == "usd" &&
			*item.Quantity == 1 &&
			*item.PriceData.ProductData.Name == "Please pay for: Box A" &&
			p.Metadata[ports.MetadataTrackingID] == "PRCL-20240115-AB12CD" &&
			p.Metadata[ports.MetadataParcelID] == "parcel-1" &&
			*p.CustomerEmail == "a@x.com" &&
			*p.SuccessURL == "https://app.example/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"
	})).Return(&stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil)

	session, err := newGateway(sessions, time.Second).CreateCheckoutSession(t.Context(), ports.CheckoutRequest{
		ParcelID:    "parcel-1",
		ParcelName:  "Box A",
		TrackingID:  "PRCL-20240115-AB12CD",
		AmountMinor: 50000,
		Currency:    "usd",
		PayerEmail:  "a@x.com",
		SuccessURL:  "https://app.example/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   "https://app.example/dashboard/payment-canceled",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_1", session.URL)
	sessions.AssertExpectations(t)
}
