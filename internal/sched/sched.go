// Package sched runs the pipeline on a recurring in-process schedule.
package sched

import (
	"context"

	"github.com/robfig/cron/v3"

	"tenderscan/internal/logger"
)

// DefaultSpec runs weekday mornings at 08:00.
const DefaultSpec = "0 8 * * 1-5"

// Scheduler wraps a cron runner around a pipeline job.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Schedule registers job under the cron spec. An empty spec falls back to
// DefaultSpec.
func (s *Scheduler) Schedule(ctx context.Context, spec string, job func(context.Context) error) error {
	if spec == "" {
		spec = DefaultSpec
	}
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(ctx); err != nil {
			logger.ErrorWithErr(ctx, "Scheduled run failed", err, "spec", spec)
		}
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "Pipeline scheduled", "spec", spec)
	return nil
}

// Start launches the cron loop and blocks until the context is canceled.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}
