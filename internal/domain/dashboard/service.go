package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/sse"
)

// View is a composed dashboard snapshot for one viewer.
type View struct {
	Token        uint64
	CompanyID    string
	CompanyName  string
	Rows         []attendance.PresenceRow
	Summary      attendance.Summary
	TodayMinutes int
	Warnings     []string
	Message      string
	Filter       attendance.ViewFilter
	Days         int
	LoadedAt     time.Time
	Location     *time.Location
}

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Load reloads the viewer's board for the requested window and composes the filtered view
	Load(ctx context.Context, userID string, req attendance.DashboardRequest) (View, error)

	// Current composes the last applied snapshot, loading only when the board has none for this window
	Current(ctx context.Context, userID string, req attendance.DashboardRequest) (View, error)

	// Markers composes the view and projects located rows onto map markers
	Markers(ctx context.Context, userID string, req attendance.DashboardRequest) (MapResponse, error)

	// Chart returns per local day event counts of the viewer's company
	Chart(ctx context.Context, userID string, req attendance.ChartRequest) (attendance.ChartResponse, error)

	// Subscribe registers a live stream of snapshot refreshes for the viewer
	Subscribe(userID string) (chan sse.Event, func())

	// RefreshSubscribed reloads every board with at least one live subscriber
	RefreshSubscribed(ctx context.Context) (int, error)
}
