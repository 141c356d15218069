package services_test

import (
	"errors"
	"testing"
	"time"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTrackingLedger_Append(t *testing.T) {
	t.Run("should stamp the clock and derive details", func(t *testing.T) {
		ctx := t.Context()
		trackingID := mustTrackingID(t)
		repo := new(MockTrackingRepository)
		repo.On("Last", ctx, trackingID).Return(nil, nil).Once()
		repo.On("Append", ctx, mock.MatchedBy(func(e tracking.Entry) bool {
			return e.Status() == tracking.DriverAssigned && e.Details() == "driver assigned" && e.CreatedAt().Equal(fixedNow)
		})).Return(nil).Once()
		steps := services.NewSaga("assign")

		entry, err := services.NewTrackingLedger(clock).Append(ctx, steps, repo, trackingID, tracking.DriverAssigned)

		require.NoError(t, err)
		assert.Equal(t, "driver assigned", entry.Details())
		assert.Equal(t, []string{services.StepLedgerAppend}, steps.Applied())
		repo.AssertExpectations(t)
	})

	t.Run("should clamp to the last entry when the clock went back", func(t *testing.T) {
		ctx := t.Context()
		trackingID := mustTrackingID(t)
		later := fixedNow.Add(time.Minute)
		last, err := tracking.NewEntry(trackingID, tracking.ParcelCreated, later)
		require.NoError(t, err)

		repo := new(MockTrackingRepository)
		repo.On("Last", ctx, trackingID).Return(&last, nil).Once()
		repo.On("Append", ctx, mock.Anything).Return(nil).Once()

		entry, err := services.NewTrackingLedger(clock).Append(ctx, services.NewSaga("x"), repo, trackingID, tracking.ParcelPaid)

		require.NoError(t, err)
		assert.True(t, entry.CreatedAt().Equal(later))
	})

	t.Run("should not record the step when the write fails", func(t *testing.T) {
		ctx := t.Context()
		trackingID := mustTrackingID(t)
		repo := new(MockTrackingRepository)
		repo.On("Last", ctx, trackingID).Return(nil, nil).Once()
		repo.On("Append", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
		steps := services.NewSaga("x")

		_, err := services.NewTrackingLedger(clock).Append(ctx, steps, repo, trackingID, "lost")

		require.Error(t, err)
		assert.Empty(t, steps.Applied())
	})

	t.Run("should reject a blank status before writing", func(t *testing.T) {
		ctx := t.Context()
		trackingID := mustTrackingID(t)
		repo := new(MockTrackingRepository)
		repo.On("Last", ctx, trackingID).Return(nil, nil).Once()

		_, err := services.NewTrackingLedger(clock).Append(ctx, services.NewSaga("x"), repo, trackingID, " ")

		require.Error(t, err)
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}
