// Package services holds the coordination components of the parcel lifecycle:
// the tracking ledger, the rider workload manager and the payment reconciler.
//
// None of them owns a transaction. Each operation receives the repositories of
// the caller's unit of work and a Saga that records every write it performs,
// so the command handler can commit once and, when a later write fails, report
// exactly which earlier writes were applied and whether they were rolled back.
package services
