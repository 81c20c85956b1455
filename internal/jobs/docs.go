// Package jobs provides scheduled background tasks for the distribution system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations that must run outside request handling.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every five seconds to publish pending outbox
// events to the broker and mark them dispatched
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outboxRepo, publisher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A publish failure marks the event failed and retries it on a later tick;
// dispatch errors are logged, never surfaced to request handling.
package jobs
