package attendance

import (
	"context"
	"time"
)

// LoadResult is what one dashboard load fetched and reconciled.
type LoadResult struct {
	CompanyID    string
	CompanyName  string
	Rows         []PresenceRow
	TodayMinutes int
	Truncated    bool
	EmptyScope   bool
}

// AttendanceService loads reconciled presence rows for a viewer's company.
type AttendanceService interface {
	// Load resolves the viewer scope, fetches events and minutes facts and reconciles them
	Load(ctx context.Context, userID string, window time.Duration, loc *time.Location) (LoadResult, error)

	// DailyCounts counts scoped events per local day between start and end (inclusive)
	DailyCounts(ctx context.Context, userID string, req ChartRequest, loc *time.Location) (ChartResponse, error)
}
