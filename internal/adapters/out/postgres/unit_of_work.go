// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Aggregate tracking for domain event processing
//   - Proper isolation between concurrent operations
//   - Automatic rollback on transaction failures
//   - Repository factory pattern for consistent database connections
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	// Perform repository operations
//	if err := uow.ParcelRepository().Update(ctx, parcel); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Multi-Repository Transactions:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	// All operations within same transaction
//	if err := uow.ParcelRepository().Update(ctx, parcel); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	if err := uow.ShipmentRepository().Update(ctx, shipment); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Error Handling Best Practices:
//   - Always handle Begin() errors
//   - Use defer for automatic rollback
//   - Explicit rollback on business logic errors
//   - Check commit errors for transaction conflicts
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Database-level locking may be needed for high-contention scenarios
package postgres

import (
	"context"

	"freight/internal/adapters/out/postgres/assignmentrepo"
	"freight/internal/adapters/out/postgres/otprepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/parcelrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/adapters/out/postgres/statuslogrepo"
	"freight/internal/adapters/out/postgres/trackingrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB

	// otpOverride, when set, replaces the Postgres-backed OTP repository.
	// The Redis store plugs in here; everything else stays transactional.
	otpOverride ports.OtpRepository
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// WithOtpRepository swaps the OTP store for an external implementation.
// Operations on the swapped store run outside the database transaction, so
// callers order them last in the unit where possible.
func (f *GormUnitOfWorkFactory) WithOtpRepository(repo ports.OtpRepository) *GormUnitOfWorkFactory {
	f.otpOverride = repo
	return f
}

// Create produces a new UnitOfWork instance ready for business transaction management.
// Each instance maintains its own transaction state and aggregate tracking,
// ensuring proper isolation between concurrent operations.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		otpOverride:       f.otpOverride,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. Implements the Unit of Work pattern using GORM's
// transaction capabilities to ensure data consistency and proper rollback handling.
//
// The unit of work tracks all aggregates modified during the transaction,
// enabling patterns like domain event publishing after successful commits.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	otpOverride       ports.OtpRepository
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction when one exists, otherwise the main
// database connection for immediate execution.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// ParcelRepository provides access to parcel persistence operations within the unit of work.
// The returned repository automatically tracks modified parcel aggregates.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// ShipmentRepository provides access to shipment persistence operations within the unit of work.
// The returned repository automatically tracks modified shipment aggregates.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

// OtpRepository provides access to one-time password persistence within the unit of work.
// Returns the external store when one was configured on the factory.
func (uow *GormUnitOfWork) OtpRepository() ports.OtpRepository {
	if uow.otpOverride != nil {
		return uow.otpOverride
	}
	return otprepo.NewGormOtpRepository(uow.conn())
}

// StatusLogRepository provides access to the append-only ledger within the unit of work.
func (uow *GormUnitOfWork) StatusLogRepository() ports.StatusLogRepository {
	return statuslogrepo.NewGormStatusLogRepository(uow.conn())
}

// AssignmentRepository provides access to assignment persistence within the unit of work.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

// LocationRepository provides access to the position sample stream within the unit of work.
func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return trackingrepo.NewGormLocationRepository(uow.conn())
}

// OutboxRepository provides access to the transactional outbox within the unit of work.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// This method is typically called by repository implementations when aggregates
// are added, updated, or otherwise modified.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
