package attendance

import (
	"context"
	"time"
)

// EventQuery scopes an event lookup. When AllUsers is false only events of
// UserIDs are returned, so an empty UserIDs yields no rows at all.
type EventQuery struct {
	UserIDs  []string
	AllUsers bool
	From     *time.Time
	To       *time.Time
	Limit    int
}

// IsEmptyScope reports whether the query can only ever return no rows.
func (q EventQuery) IsEmptyScope() bool {
	return !q.AllUsers && len(q.UserIDs) == 0
}

// EventStore is the read side of the fichajes store.
type EventStore interface {
	// QueryEvents returns events newest first, joined with the employee snapshot
	QueryEvents(ctx context.Context, query EventQuery) ([]Event, error)

	// QueryDailyMinutes returns the worked-minutes facts for the given users and local days
	QueryDailyMinutes(ctx context.Context, userIDs []string, localDays []string) ([]DailyMinutesFact, error)
}
