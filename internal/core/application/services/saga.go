package services

import (
	"context"
	"errors"

	"parcelhub/internal/pkg/errs"
)

// Step names recorded by the lifecycle operations.
const (
	StepParcelAdd      = "parcel.add"
	StepParcelUpdate   = "parcel.update"
	StepRiderAdd       = "rider.add"
	StepRiderUpdate    = "rider.update"
	StepUserAdd        = "user.add"
	StepUserPromote    = "user.promote"
	StepPaymentRecord  = "payment.record"
	StepLedgerAppend   = "ledger.append"
	StepCommit         = "commit"
	stepUnknownFailure = "unknown"
)

// Rollbacker undoes the writes of a unit of work.
type Rollbacker interface {
	Rollback(ctx context.Context) error
}

// Saga records the ordered sub-writes of one lifecycle operation. The
// compensating action for every step is the rollback of the shared unit of
// work, so Abort undoes all of them at once.
type Saga struct {
	operation string
	applied   []string
}

func NewSaga(operation string) *Saga {
	return &Saga{operation: operation}
}

type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.step + ": " + e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

// Step runs write and records it when it succeeds. A failure is tagged with
// the step name for Abort.
func (s *Saga) Step(name string, write func() error) error {
	if err := write(); err != nil {
		return &stepError{step: name, err: err}
	}
	s.applied = append(s.applied, name)
	return nil
}

// Applied returns the names of the successful steps in order.
func (s *Saga) Applied() []string {
	out := make([]string, len(s.applied))
	copy(out, s.applied)
	return out
}

func (s *Saga) Operation() string {
	return s.operation
}

// Abort rolls the unit of work back and classifies err. With nothing applied
// yet the original error is returned untouched. Otherwise the result is an
// errs.PartialFailureError naming the applied steps, the failed one and
// whether the rollback succeeded.
func (s *Saga) Abort(ctx context.Context, rb Rollbacker, err error) error {
	failed, cause := stepUnknownFailure, err
	var se *stepError
	if errors.As(err, &se) {
		failed, cause = se.step, se.err
	}

	rollbackErr := rb.Rollback(ctx)
	if len(s.applied) == 0 {
		return cause
	}

	return errs.NewPartialFailureError(s.operation, s.applied, failed, rollbackErr == nil, cause)
}
