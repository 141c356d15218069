// Package stripegateway implements ports.PaymentGateway over Stripe Checkout.
package stripegateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const serviceName = "stripe"

// sessionClient is the part of the Stripe checkout session client the gateway uses.
type sessionClient interface {
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Gateway bounds every Stripe call with a timeout.
type Gateway struct {
	sessions sessionClient
	timeout  time.Duration
}

var _ ports.PaymentGateway = (*Gateway)(nil)

// NewGateway builds a gateway authenticated with the secret key.
func NewGateway(secretKey string, timeout time.Duration) *Gateway {
	return newGateway(client.New(secretKey, nil).CheckoutSessions, timeout)
}

func newGateway(sessions sessionClient, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{sessions: sessions, timeout: timeout}
}

// RetrieveSession reads a checkout session. The payment intent id becomes the
// transaction id.
func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (ports.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return ports.PaymentSession{}, translate("retrieve session "+sessionID, err)
	}

	session := ports.PaymentSession{
		ID:            s.ID,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		PaymentStatus: string(s.PaymentStatus),
		AmountMinor:   s.AmountTotal,
		Currency:      string(s.Currency),
		PayerEmail:    s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		session.TransactionID = s.PaymentIntent.ID
	}
	if session.PayerEmail == "" && s.CustomerDetails != nil {
		session.PayerEmail = s.CustomerDetails.Email
	}
	return session, nil
}

// CreateCheckoutSession opens a one-item payment session for the parcel.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, req ports.CheckoutRequest) (ports.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Please pay for: " + req.ParcelName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		Metadata: map[string]string{
			ports.MetadataParcelID:   req.ParcelID,
			ports.MetadataParcelName: req.ParcelName,
			ports.MetadataTrackingID: req.TrackingID,
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	if req.PayerEmail != "" {
		params.CustomerEmail = stripe.String(req.PayerEmail)
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return ports.CheckoutSession{}, translate("create session for "+req.TrackingID, err)
	}
	return ports.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// translate keeps unknown sessions distinguishable from an unreachable or
// failing gateway.
func translate(action string, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return errs.NewExternalServiceErrorWithCause(serviceName, action, err)
	}

	code := stripeErr.HTTPStatusCode
	switch {
	case code == http.StatusNotFound:
		return errs.NewObjectNotFoundErrorWithCause("sessionId", action, err)
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError && code != http.StatusTooManyRequests:
		return errs.NewRequestRejectedError(serviceName, action, err)
	default:
		return errs.NewExternalServiceErrorWithCause(serviceName, action, err)
	}
}
