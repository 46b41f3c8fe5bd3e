// Package jobs provides scheduled background tasks for the laundry engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the order workflow requires.
//
// # Available Jobs
//
// 1. DraftExpiryJob - Runs every minute to cancel quick-drop drafts that were
// never itemized within the configured age.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleDraftsHandler, transitionHandler, 24*time.Hour, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The expiry job skips drafts that were touched between listing and
// cancellation (already progressed or deleted) and logs everything else.
package jobs
