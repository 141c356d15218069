package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the repair jobs.
type Schedules struct {
	SettlementRepair    string
	RiderWorkloadRepair string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	settlementRepairJob    *SettlementRepairJob
	riderWorkloadRepairJob *RiderWorkloadRepairJob
}

// NewJobManager creates a job manager with both repair jobs.
func NewJobManager(
	settlements SettlementRepairer,
	workload WorkloadRepairer,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		settlementRepairJob:    NewSettlementRepairJob(settlements, schedules.SettlementRepair, logger),
		riderWorkloadRepairJob: NewRiderWorkloadRepairJob(workload, schedules.RiderWorkloadRepair, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.settlementRepairJob.Start(); err != nil {
		return fmt.Errorf("failed to start settlement repair job: %w", err)
	}

	if err := jm.riderWorkloadRepairJob.Start(); err != nil {
		jm.settlementRepairJob.Stop()
		return fmt.Errorf("failed to start rider workload repair job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.riderWorkloadRepairJob.Stop()
	jm.settlementRepairJob.Stop()
}
