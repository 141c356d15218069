// Package services provides domain services that do not belong to a single
// aggregate root.
//
// The package includes:
//   - TrackingIDGenerator: produces human-readable shipment identifiers of the
//     form PRCL-YYYYMMDD-XXXXXX
//
// The generator performs no uniqueness check. Callers rely on the unique index
// on parcels.tracking_id and regenerate on conflict.
package services
