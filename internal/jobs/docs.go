// Package jobs provides scheduled background tasks that finish lifecycle
// transitions left partially applied.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field in their schedule.
//
// # Available Jobs
//
// 1. SettlementRepairJob - completes payment records whose parcel was not
// marked paid or whose parcel_paid ledger entry is missing
// 2. RiderWorkloadRepairJob - makes riders available again when they are
// in_delivery without any undelivered parcel
//
// # Usage
//
//	jobManager := jobs.NewJobManager(settlementRepair, workloadRepair, jobs.Schedules{
//		SettlementRepair:    "0 * * * * *",
//		RiderWorkloadRepair: "30 * * * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick. Every repaired record
// increments the parcel_lifecycle_repairs_total counter.
package jobs
