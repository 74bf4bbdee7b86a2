// Package jobs provides scheduled background tasks for the food delivery
// platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. AutoDispatchJob - Runs every five seconds to assign ready-for-pickup
// orders to the nearest available rider
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(autoDispatchJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The dispatch job treats "no candidate riders" and assignment races as
// expected outcomes and does not log them as errors; the next run retries.
package jobs
