package attendance

import (
	"context"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/retry"
)

// retryingEventStore retries failed store reads with backoff.
type retryingEventStore struct {
	next   attendance.EventStore
	policy retry.Policy
}

// WithRetry wraps store so every read is attempted according to policy.
func WithRetry(store attendance.EventStore, policy retry.Policy) attendance.EventStore {
	if policy.Attempts <= 1 {
		return store
	}
	return &retryingEventStore{next: store, policy: policy}
}

func (s *retryingEventStore) QueryEvents(ctx context.Context, query attendance.EventQuery) ([]attendance.Event, error) {
	var events []attendance.Event
	err := retry.Do(ctx, s.policy, "query_events", func(ctx context.Context) error {
		var err error
		events, err = s.next.QueryEvents(ctx, query)
		return err
	})
	return events, err
}

func (s *retryingEventStore) QueryDailyMinutes(ctx context.Context, userIDs []string, localDays []string) ([]attendance.DailyMinutesFact, error) {
	var facts []attendance.DailyMinutesFact
	err := retry.Do(ctx, s.policy, "query_daily_minutes", func(ctx context.Context) error {
		var err error
		facts, err = s.next.QueryDailyMinutes(ctx, userIDs, localDays)
		return err
	})
	return facts, err
}
