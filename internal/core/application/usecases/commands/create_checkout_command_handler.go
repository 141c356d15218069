package commands

import (
	"context"
	"strings"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// CheckoutURLs are the pages the gateway sends the payer back to. The success
// URL receives the session id as the session_id query parameter.
type CheckoutURLs struct {
	SiteDomain string
}

func (u CheckoutURLs) success() string {
	return strings.TrimRight(u.SiteDomain, "/") + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"
}

func (u CheckoutURLs) cancel() string {
	return strings.TrimRight(u.SiteDomain, "/") + "/dashboard/payment-canceled"
}

// CreateCheckoutCommandHandler writes nothing; the session is settled later by
// ConfirmPaymentCommandHandler.
type CreateCheckoutCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	urls       CheckoutURLs
}

func NewCreateCheckoutCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway, urls CheckoutURLs) CreateCheckoutCommandHandler {
	return CreateCheckoutCommandHandler{uowFactory: uowFactory, gateway: gateway, urls: urls}
}

func (h CreateCheckoutCommandHandler) Handle(ctx context.Context, command CreateCheckoutCommand) (ports.CheckoutSession, error) {
	if err := command.Validate(); err != nil {
		return ports.CheckoutSession{}, err
	}

	p, err := h.uowFactory.Create().ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return ports.CheckoutSession{}, err
	}
	if p.IsPaid() {
		return ports.CheckoutSession{}, errs.NewConflictError("parcel "+p.TrackingID().String(), "payment already settled")
	}

	trackingID := p.TrackingID().String()
	return h.gateway.CreateCheckoutSession(ctx, ports.CheckoutRequest{
		ParcelID:    p.ID().String(),
		ParcelName:  p.Details().Name(),
		TrackingID:  trackingID,
		AmountMinor: p.Cost().Minor(),
		Currency:    p.Cost().Currency(),
		PayerEmail:  p.Details().SenderEmail().String(),
		SuccessURL:  h.urls.success(),
		CancelURL:   h.urls.cancel(),
	})
}
