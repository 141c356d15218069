package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrConflict          = errors.New("conflict")
	ErrExternalService   = errors.New("external service failure")
	ErrRequestRejected   = errors.New("request rejected")
	ErrPartialFailure    = errors.New("partial failure")
)

// Kind is the discriminant of a failure returned to callers.
type Kind string

const (
	KindUnknown         Kind = "internal"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindExternalService Kind = "external_service"
	KindPartialFailure  Kind = "partial_failure"
)

// KindOf classifies err by the sentinel found in its chain. Partial failures
// win over the kind of their cause.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPartialFailure):
		return KindPartialFailure
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrExternalService):
		return KindExternalService
	default:
		return KindUnknown
	}
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %v, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports that a referenced parcel, rider, payment or
// tracking id does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %v", ErrObjectNotFound, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError reports that the requested transition collides with the
// current state (duplicate payment, rider already committed, ...).
type ConflictError struct {
	Subject string
	Reason  string
	Cause   error
}

func NewConflictError(subject, reason string) *ConflictError {
	return &ConflictError{Subject: subject, Reason: reason}
}

func NewConflictErrorWithCause(subject, reason string, cause error) *ConflictError {
	return &ConflictError{Subject: subject, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s: %s", ErrConflict, e.Subject, e.Reason), e.Cause)
}

// Unwrap exposes the cause as well, so callers can match the storage
// sentinel behind a uniqueness conflict.
func (e *ConflictError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrConflict}
	}
	return []error{ErrConflict, e.Cause}
}

// ExternalServiceError reports an unreachable collaborator or an answer that
// could not be interpreted.
//
// Rejected marks a request the service refused as such; sending it again
// cannot succeed, so callers must not retry it.
type ExternalServiceError struct {
	Service  string
	Reason   string
	Cause    error
	Rejected bool
}

func NewExternalServiceError(service, reason string) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Reason: reason}
}

func NewExternalServiceErrorWithCause(service, reason string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Reason: reason, Cause: cause}
}

func NewRequestRejectedError(service, reason string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Reason: reason, Cause: cause, Rejected: true}
}

func (e *ExternalServiceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s: %s", ErrExternalService, e.Service, e.Reason), e.Cause)
}

func (e *ExternalServiceError) Unwrap() []error {
	if e.Rejected {
		return []error{ErrExternalService, ErrRequestRejected}
	}
	return []error{ErrExternalService}
}

// Detail returns the human readable part of err for structured results.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	return sanitize(err.Error())
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}
