package parcel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeliveryStatus(t *testing.T) {
	testCases := []struct {
		label string
		kind  parcel.StatusKind
	}{
		{"pending-pickup", parcel.Paid},
		{"driver_assigned", parcel.Assigned},
		{"parcel_delivered", parcel.Delivered},
		{"in_transit", parcel.Custom},
		{"  parcel_delivered  ", parcel.Custom},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			s, err := parcel.ParseDeliveryStatus(tc.label)

			require.NoError(t, err)
			assert.Equal(t, tc.kind, s.Kind())
		})
	}

	t.Run("label is kept verbatim", func(t *testing.T) {
		s, err := parcel.ParseDeliveryStatus(" at warehouse ")
		require.NoError(t, err)
		assert.Equal(t, " at warehouse ", s.Label())
	})

	t.Run("blank is rejected", func(t *testing.T) {
		_, err := parcel.ParseDeliveryStatus("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreDeliveryStatus(t *testing.T) {
	assert.Equal(t, parcel.Created, parcel.RestoreDeliveryStatus("").Kind())
	assert.True(t, parcel.RestoreDeliveryStatus("parcel_delivered").IsDelivered())
	assert.Equal(t, "lost", parcel.RestoreDeliveryStatus("lost").Label())
}

func TestParsePaymentStatus(t *testing.T) {
	s, err := parcel.ParsePaymentStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, parcel.PaymentPaid, s)
	assert.Equal(t, "paid", s.String())

	s, err = parcel.ParsePaymentStatus("")
	require.NoError(t, err)
	assert.Equal(t, parcel.Unpaid, s)

	_, err = parcel.ParsePaymentStatus("refunded")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
