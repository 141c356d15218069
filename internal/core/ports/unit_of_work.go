package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained
// after Begin share its transaction; repositories obtained without Begin read
// and write directly.
type UnitOfWork interface {
	// Begin starts a new transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction. Returns an error when there
	// is no active transaction.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	RiderRepository() RiderRepository
	PaymentRepository() PaymentRepository
	TrackingRepository() TrackingRepository
	UserRepository() UserRepository
}
