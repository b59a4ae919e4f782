package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRefresher) RefreshSubscribed(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return 2, f.err
}

func TestScheduler_RunOnce(t *testing.T) {
	refresher := &fakeRefresher{}
	s := NewScheduler()
	NewDashboardJobs(refresher, time.Minute).RegisterJobs(s)

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	refresher := &fakeRefresher{}
	s := NewScheduler()
	NewDashboardJobs(refresher, 10*time.Millisecond).RegisterJobs(s)

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		return refresher.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	after := refresher.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, refresher.calls.Load())
}

func TestScheduler_JobErrorDoesNotStopLoop(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("store down")}
	s := NewScheduler()
	NewDashboardJobs(refresher, 10*time.Millisecond).RegisterJobs(s)

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return refresher.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler()
	assert.NotPanics(t, s.Stop)
}

func TestDashboardJobs_PropagatesError(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("store down")}
	jobs := NewDashboardJobs(refresher, time.Minute)

	assert.Error(t, jobs.RefreshLiveDashboards(context.Background()))
}
