package kernel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies parcels, riders, users and ledger entries. It wraps
// github.com/google/uuid so the rest of the domain never depends on it directly.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or unhyphenated form.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores an identifier from its 16-byte storage form.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// ParseID parses a caller supplied identifier and reports failures as a
// validation error naming paramName.
func ParseID(paramName, s string) (UUID, error) {
	if s == "" {
		return UUID{}, errs.NewValueIsRequiredError(paramName)
	}

	id, err := UUIDFromString(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if err = id.Validate(); err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}

	return id, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for storage adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
