package queries_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParcelQueryHandler_Handle(t *testing.T) {
	t.Run("flattens the parcel", func(t *testing.T) {
		ctx := t.Context()
		p := newParcel(t)
		parcels := new(MockParcelReader)
		parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
		query, err := queries.NewGetParcelQuery(p.ID())
		require.NoError(t, err)

		resp, err := queries.NewGetParcelQueryHandler(parcels).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "PRCL-20240115-AB12CD", resp.TrackingID)
		assert.Equal(t, "unassigned", resp.DeliveryStatus)
		assert.Equal(t, "unpaid", resp.PaymentStatus)
		assert.InDelta(t, 500.0, resp.Cost, 0.001)
		assert.Empty(t, resp.RiderID)
	})

	t.Run("missing parcel", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		parcels := new(MockParcelReader)
		parcels.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("parcelId", id)).Once()
		query, err := queries.NewGetParcelQuery(id)
		require.NoError(t, err)

		_, err = queries.NewGetParcelQueryHandler(parcels).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGetRiderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	email, err := kernel.NewEmail("r1@x.com")
	require.NoError(t, err)
	r, err := rider.NewRider(kernel.NewUUID(), email, "Rider One", "Dhaka", fixedNow)
	require.NoError(t, err)
	r.Approve()

	riders := new(MockRiderReader)
	riders.On("Get", ctx, r.ID()).Return(r, nil).Once()
	query, err := queries.NewGetRiderQuery(r.ID())
	require.NoError(t, err)

	resp, err := queries.NewGetRiderQueryHandler(riders).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "available", resp.WorkStatus)
	assert.Equal(t, "Dhaka", resp.District)
}
