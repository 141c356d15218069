package errs

import (
	"fmt"
	"strings"
)

// PartialFailureError reports a multi-entity transition in which one of the
// coupled writes failed after others had been applied.
//
// Applied lists the sub-writes that succeeded before Failed broke the
// transition. Compensated tells whether those writes were undone; when it is
// false the store may hold a partially applied transition that the repair
// jobs have to pick up.
type PartialFailureError struct {
	Operation   string
	Applied     []string
	Failed      string
	Compensated bool
	Cause       error
}

func NewPartialFailureError(
	operation string,
	applied []string,
	failed string,
	compensated bool,
	cause error,
) *PartialFailureError {
	out := make([]string, len(applied))
	copy(out, applied)

	return &PartialFailureError{
		Operation:   operation,
		Applied:     out,
		Failed:      failed,
		Compensated: compensated,
		Cause:       cause,
	}
}

func (e *PartialFailureError) Error() string {
	state := "not compensated"
	if e.Compensated {
		state = "compensated"
	}

	msg := fmt.Sprintf("%s: %s failed at %q after [%s], %s",
		ErrPartialFailure, e.Operation, e.Failed, strings.Join(e.Applied, ", "), state)
	return withCause(msg, e.Cause)
}

// Unwrap exposes both the sentinel and the cause so errors.Is matches either.
func (e *PartialFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPartialFailure}
	}
	return []error{ErrPartialFailure, e.Cause}
}
