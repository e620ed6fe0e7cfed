package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconciliationJob runs the commission reconciliation sweep on a schedule.
// Each run verifies that every completed order's stored split still
// reassembles its gross amount and flags mismatches in the audit log.
type ReconciliationJob struct {
	handler  commands.ReconcileCommissionsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates a job running the reconciliation sweep on
// the given cron schedule.
func NewReconciliationJob(
	handler commands.ReconcileCommissionsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start schedules the reconciliation sweep.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileCommissionsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "commission reconciliation failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "reconciliation job stopped")
}
