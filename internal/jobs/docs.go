// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the freight service.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Drains pending outbox events to the notification broker
// 2. RedeliveryJob - Requeues failed door-to-door parcels for another delivery attempt
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, requeueHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The outbox dispatcher runs every five seconds so notifications leave the
// system promptly without hammering the broker. The redelivery sweep runs
// hourly; failed deliveries are not time-critical and the sweep is idempotent.
//
// # Error Handling
//
// - Both jobs log failures and retry on the next tick
// - A failed sweep never leaves partial state; each run is one transaction
// - Failed job starts will stop any already running jobs
package jobs
