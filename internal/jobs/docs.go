// Package jobs provides scheduled background tasks, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OverdueDeparturesJob runs on OVERDUE_JOB_SCHEDULE and logs a warning for every shipment
// whose departure time has passed while its package is still Pending.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(logger,
//		jobs.NewOverdueDeparturesJob(overdueHandler, "@every 1m", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed check is logged and retried on the next tick. A job that fails to start stops
// the jobs already started.
package jobs
