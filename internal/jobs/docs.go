// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations of the order lifecycle.
//
// # Available Jobs
//
// 1. OrderCompletionJob - Runs every minute to finalize delivered orders the
// customer never confirmed, once the configured grace period has passed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(completeOrdersHandler, grace, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The completion sweep treats lost optimistic-concurrency races as expected:
// an order the customer confirms while the sweep runs is simply skipped.
// All other errors are logged.
package jobs
