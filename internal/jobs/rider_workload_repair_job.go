package jobs

import (
	"context"
	"log/slog"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/metrics"

	"github.com/robfig/cron/v3"
)

// WorkloadRepairer releases riders left in_delivery without an undelivered
// parcel.
type WorkloadRepairer interface {
	Handle(ctx context.Context) ([]services.RiderUpdateResult, error)
}

// RiderWorkloadRepairJob periodically releases stuck riders.
type RiderWorkloadRepairJob struct {
	handler  WorkloadRepairer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRiderWorkloadRepairJob(handler WorkloadRepairer, schedule string, logger *slog.Logger) *RiderWorkloadRepairJob {
	return &RiderWorkloadRepairJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "rider_workload_repair_job"),
	}
}

// Run performs one repair pass.
func (j *RiderWorkloadRepairJob) Run(ctx context.Context) {
	released, err := j.handler.Handle(ctx)
	for _, r := range released {
		metrics.RepairsTotal.WithLabelValues("rider_workload").Inc()
		j.logger.InfoContext(ctx, "Rider released", "rider_id", r.RiderID.String())
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Rider workload repair job failed", "error", err)
	}
}

func (j *RiderWorkloadRepairJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider workload repair job started", "schedule", j.schedule)
	return nil
}

func (j *RiderWorkloadRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rider workload repair job stopped")
}
