package jobs

import (
	"context"
	"log/slog"

	"parcelhub/internal/metrics"

	"github.com/robfig/cron/v3"
)

const settlementRepairBatch = 100

// SettlementRepairer completes payment records whose parcel update or
// parcel_paid entry is missing and reports how many it repaired.
type SettlementRepairer interface {
	Handle(ctx context.Context, limit int) (int, error)
}

// SettlementRepairJob periodically finishes settlements that stopped after
// the payment record was written.
type SettlementRepairJob struct {
	handler  SettlementRepairer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSettlementRepairJob creates the job. schedule is a cron expression with a
// seconds field.
func NewSettlementRepairJob(handler SettlementRepairer, schedule string, logger *slog.Logger) *SettlementRepairJob {
	return &SettlementRepairJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "settlement_repair_job"),
	}
}

// Run performs one repair pass.
func (j *SettlementRepairJob) Run(ctx context.Context) {
	repaired, err := j.handler.Handle(ctx, settlementRepairBatch)
	if repaired > 0 {
		metrics.RepairsTotal.WithLabelValues("settlement").Add(float64(repaired))
		j.logger.InfoContext(ctx, "Settlements repaired", "count", repaired)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Settlement repair job failed", "error", err)
	}
}

// Start schedules the job.
func (j *SettlementRepairJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement repair job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job and waits for a running pass to finish.
func (j *SettlementRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Settlement repair job stopped")
}
