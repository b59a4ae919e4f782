package cron

import (
	"context"
	"log/slog"
	"time"
)

// BoardRefresher reloads dashboards that someone is watching.
type BoardRefresher interface {
	RefreshSubscribed(ctx context.Context) (int, error)
}

type DashboardJobs struct {
	refresher BoardRefresher
	interval  time.Duration
}

func NewDashboardJobs(refresher BoardRefresher, interval time.Duration) *DashboardJobs {
	return &DashboardJobs{refresher: refresher, interval: interval}
}

func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "refresh_live_dashboards",
		Interval: j.interval,
		Timeout:  j.interval,
		Fn:       j.RefreshLiveDashboards,
	})
}

// RefreshLiveDashboards pushes a fresh snapshot to every board with an open stream.
func (j *DashboardJobs) RefreshLiveDashboards(ctx context.Context) error {
	refreshed, err := j.refresher.RefreshSubscribed(ctx)
	if err != nil {
		return err
	}
	if refreshed > 0 {
		slog.Info("Cron: refreshed live dashboards", "boards", refreshed)
	}
	return nil
}
