// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
// Each handler depends on the narrowest composition it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// OtpRepoFactory provides access to the OTP repository within a transaction.
	OtpRepoFactory interface {
		OtpRepository() ports.OtpRepository
	}

	// StatusLogRepoFactory provides access to the status ledger within a transaction.
	StatusLogRepoFactory interface {
		StatusLogRepository() ports.StatusLogRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// LocationRepoFactory provides access to the location repository within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// RoutingUoW manages transactions for next-stop selection: the shipment
	// pointer update plus the parcel and location reads feeding the selector.
	RoutingUoW interface {
		TxManager
		ShipmentRepoFactory
		ParcelRepoFactory
		LocationRepoFactory
	}

	// RoutingUoWFactory creates new routing unit of work instances.
	RoutingUoWFactory interface {
		Create() RoutingUoW
	}

	// OtpIssueUoW manages transactions for OTP issuance: the code upsert plus
	// the outbox rows carrying the SMS and email triggers.
	OtpIssueUoW interface {
		TxManager
		ShipmentRepoFactory
		ParcelRepoFactory
		OtpRepoFactory
		OutboxRepoFactory
	}

	// OtpIssueUoWFactory creates new OTP issuance unit of work instances.
	OtpIssueUoWFactory interface {
		Create() OtpIssueUoW
	}

	// DeliveryUoW manages transactions for delivery settlement and failure:
	// parcel, shipment, OTP, ledger and outbox all move in one unit.
	DeliveryUoW interface {
		TxManager
		ParcelRepoFactory
		ShipmentRepoFactory
		OtpRepoFactory
		StatusLogRepoFactory
		OutboxRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// TransferUoW manages transactions for transfer completion: the shipment,
	// every member parcel, the ledger batch, the lock release and the
	// notification row commit or roll back together.
	TransferUoW interface {
		TxManager
		ParcelRepoFactory
		ShipmentRepoFactory
		StatusLogRepoFactory
		AssignmentRepoFactory
		OutboxRepoFactory
	}

	// TransferUoWFactory creates new transfer unit of work instances.
	TransferUoWFactory interface {
		Create() TransferUoW
	}

	// TrackingUoW manages transactions for position sample appends.
	TrackingUoW interface {
		TxManager
		ShipmentRepoFactory
		LocationRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// RequeueUoW manages transactions for the redelivery sweep.
	RequeueUoW interface {
		TxManager
		ParcelRepoFactory
		StatusLogRepoFactory
	}

	// RequeueUoWFactory creates new requeue unit of work instances.
	RequeueUoWFactory interface {
		Create() RequeueUoW
	}

	// OutboxUoW manages transactions for outbox dispatch bookkeeping.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
