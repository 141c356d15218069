package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutCommandHandler_Handle(t *testing.T) {
	urls := commands.CheckoutURLs{SiteDomain: "https://parcels.example/"}

	t.Run("creates a session for the parcel cost", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		uow := newMockUoW()
		uow.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
		gateway := new(MockPaymentGateway)
		gateway.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(req ports.CheckoutRequest) bool {
			return req.AmountMinor == 50000 &&
				req.TrackingID == "PRCL-20240115-AB12CD" &&
				req.ParcelName == "Box A" &&
				req.PayerEmail == "a@x.com" &&
				req.SuccessURL == "https://parcels.example/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}" &&
				req.CancelURL == "https://parcels.example/dashboard/payment-canceled"
		})).Return(ports.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil).Once()

		cmd, err := commands.NewCreateCheckoutCommand(p.ID())
		require.NoError(t, err)

		session, err := commands.NewCreateCheckoutCommandHandler(newFactory(uow), gateway, urls).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example/cs_1", session.URL)
		gateway.AssertExpectations(t)
	})

	t.Run("refuses a paid parcel", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		require.NoError(t, p.MarkPaid())
		uow := newMockUoW()
		uow.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
		gateway := new(MockPaymentGateway)

		cmd, err := commands.NewCreateCheckoutCommand(p.ID())
		require.NoError(t, err)

		_, err = commands.NewCreateCheckoutCommandHandler(newFactory(uow), gateway, urls).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})
}
