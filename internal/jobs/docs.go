// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReconciliationJob - Periodically sweeps completed orders and records a
// commission_mismatch audit event for any order whose stored commission
// split no longer reassembles its gross amount.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "*/5 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation schedule is configurable; the default of "*/5 * * * *"
// runs every five minutes. The sweep only reads orders, so overlap with
// live traffic is safe.
//
// # Error Handling
//
// Sweep failures are logged and the next scheduled run retries from
// scratch; a failed start stops the application boot.
package jobs
