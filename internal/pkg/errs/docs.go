// Package errs provides the error taxonomy shared by every layer of the parcel
// lifecycle service.
//
// Each error type follows the same shape:
//   - a sentinel error (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details of the failure
//   - NewXxxError / NewXxxErrorWithCause constructors
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Sentinels are grouped into kinds (validation, not_found, conflict,
// external_service, partial_failure). KindOf resolves the kind of any error
// chain so that transports can map failures to a structured result without
// knowing the concrete types.
package errs
