package cron

import (
	"context"
	"time"
)

// CachePruner is implemented by the payroll service.
type CachePruner interface {
	PruneCache()
}

type PayrollJobs struct {
	cache CachePruner
}

func NewPayrollJobs(cache CachePruner) *PayrollJobs {
	return &PayrollJobs{cache: cache}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_payroll_cache", 1*time.Hour, j.PrunePayrollCache)
}

// PrunePayrollCache drops expired monthly summaries so a long-lived process
// never accumulates stale entries.
func (j *PayrollJobs) PrunePayrollCache(ctx context.Context) error {
	j.cache.PruneCache()
	return nil
}
