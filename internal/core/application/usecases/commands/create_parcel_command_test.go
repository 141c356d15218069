package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Generate() (kernel.TrackingID, error) {
	args := m.Called()
	return args.Get(0).(kernel.TrackingID), args.Error(1)
}

func validParcelInput() commands.ParcelInput {
	return commands.ParcelInput{ParcelName: "Box A", SenderEmail: "a@x.com", Cost: 500, Currency: "usd"}
}

func TestNewCreateParcelCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateParcelCommand(validParcelInput())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(50000), cmd.Cost().Minor())
		assert.Equal(t, "Box A", cmd.Details().Name())
	})

	t.Run("aggregates field errors", func(t *testing.T) {
		_, err := commands.NewCreateParcelCommand(commands.ParcelInput{Cost: 0, Currency: "usd"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateParcelCommand{}.Validate(), commands.ErrCreateParcelCommandIsNotConstructed)
	})
}

func TestCreateParcelCommandHandler_Handle(t *testing.T) {
	cmd, err := commands.NewCreateParcelCommand(validParcelInput())
	require.NoError(t, err)

	t.Run("should store the parcel and append parcel_created", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.expectTx(ctx, true)
		gen := new(MockGenerator)
		gen.On("Generate").Return(mustTrackingID(t), nil).Once()

		mock.InOrder(
			uow.parcels.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
			uow.ledger.On("Last", ctx, mustTrackingID(t)).Return(nil, nil).Once(),
			uow.ledger.On("Append", ctx, mock.MatchedBy(func(e tracking.Entry) bool {
				return e.Status() == tracking.ParcelCreated && e.Details() == "parcel created"
			})).Return(nil).Once(),
		)

		handler := commands.NewCreateParcelCommandHandler(newFactory(uow), gen, services.NewTrackingLedger(clock), clock, 3)
		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "PRCL-20240115-AB12CD", result.Parcel.TrackingID().String())
		assert.Equal(t, parcel.Created, result.Parcel.DeliveryStatus().Kind())
		assert.Equal(t, parcel.Unpaid, result.Parcel.PaymentStatus())
		assert.Equal(t, fixedNow, result.LedgerEntry.CreatedAt())
		uow.AssertExpectations(t)
		uow.parcels.AssertExpectations(t)
		uow.ledger.AssertExpectations(t)
	})

	t.Run("should regenerate the tracking id on collision", func(t *testing.T) {
		ctx := t.Context()
		taken := errs.NewConflictErrorWithCause("parcel", "duplicate tracking id", ports.ErrTrackingIDTaken)

		first := newMockUoW()
		first.On("Begin", ctx).Return(nil).Once()
		first.On("Rollback", ctx).Return(nil)
		first.parcels.On("Add", ctx, mock.Anything).Return(taken).Once()

		second := newMockUoW()
		second.expectTx(ctx, true)
		second.parcels.On("Add", ctx, mock.Anything).Return(nil).Once()
		second.ledger.On("Last", ctx, mock.Anything).Return(nil, nil).Once()
		second.ledger.On("Append", ctx, mock.Anything).Return(nil).Once()

		gen := new(MockGenerator)
		gen.On("Generate").Return(mustTrackingID(t), nil).Twice()

		handler := commands.NewCreateParcelCommandHandler(newFactory(first, second), gen, services.NewTrackingLedger(clock), clock, 3)
		_, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		gen.AssertNumberOfCalls(t, "Generate", 2)
		first.AssertNotCalled(t, "Commit", ctx)
		second.AssertExpectations(t)
	})

	t.Run("should give up after the attempt bound", func(t *testing.T) {
		ctx := t.Context()
		taken := errs.NewConflictErrorWithCause("parcel", "duplicate tracking id", ports.ErrTrackingIDTaken)

		uow := newMockUoW()
		uow.On("Begin", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.parcels.On("Add", ctx, mock.Anything).Return(taken)

		gen := new(MockGenerator)
		gen.On("Generate").Return(mustTrackingID(t), nil)

		handler := commands.NewCreateParcelCommandHandler(newFactory(uow), gen, services.NewTrackingLedger(clock), clock, 2)
		_, err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		require.ErrorIs(t, err, ports.ErrTrackingIDTaken)
		gen.AssertNumberOfCalls(t, "Generate", 2)
	})

	t.Run("should report a failed ledger append as partial failure", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.expectTx(ctx, false)
		uow.parcels.On("Add", ctx, mock.Anything).Return(nil).Once()
		uow.ledger.On("Last", ctx, mock.Anything).Return(nil, nil).Once()
		uow.ledger.On("Append", ctx, mock.Anything).Return(errors.New("disk full")).Once()
		gen := new(MockGenerator)
		gen.On("Generate").Return(mustTrackingID(t), nil).Once()

		handler := commands.NewCreateParcelCommandHandler(newFactory(uow), gen, services.NewTrackingLedger(clock), clock, 3)
		_, err := handler.Handle(ctx, cmd)

		var pf *errs.PartialFailureError
		require.ErrorAs(t, err, &pf)
		assert.Equal(t, []string{services.StepParcelAdd}, pf.Applied)
		assert.Equal(t, services.StepLedgerAppend, pf.Failed)
		assert.True(t, pf.Compensated)
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}
