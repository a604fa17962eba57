package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository bound to the current transaction.
	ParcelRepository() ParcelRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// OtpRepository returns an OtpRepository bound to the current transaction.
	// When the OTP store is backed by Redis the returned repository ignores
	// the transaction; consumption is then best-effort last in the unit.
	OtpRepository() OtpRepository

	// StatusLogRepository returns a StatusLogRepository bound to the current transaction.
	StatusLogRepository() StatusLogRepository

	// AssignmentRepository returns an AssignmentRepository bound to the current transaction.
	AssignmentRepository() AssignmentRepository

	// LocationRepository returns a LocationRepository bound to the current transaction.
	LocationRepository() LocationRepository

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
