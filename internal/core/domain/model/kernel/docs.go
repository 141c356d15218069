// Package kernel holds the value objects shared by every aggregate of the parcel
// lifecycle: identifiers, identities, money and tracking identifiers.
//
// All value objects are immutable. Their zero values are invalid and report it
// through Validate, so aggregates can reject half-initialized input.
package kernel
