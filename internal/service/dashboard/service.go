package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/sse"
	attendanceservice "github.com/cmlabs-hris/fichajes-dashboard/internal/service/attendance"
)

// boardIdleTTL is how long an unwatched board is kept after its last use.
const boardIdleTTL = 30 * time.Minute

type Config struct {
	Locale       format.Locale
	Location     *time.Location
	DefaultDays  int
	MaxEmployees int
}

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	hub               *sse.Hub
	cfg               Config
	boards            *boardRegistry
	now               func() time.Time
}

func NewDashboardService(attendanceService attendance.AttendanceService, hub *sse.Hub, cfg Config) dashboard.DashboardService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = attendance.DefaultWindowDays
	}
	if cfg.Locale.Code == "" {
		cfg.Locale = format.Spanish
	}
	if hub == nil {
		hub = sse.NewHub()
	}
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		hub:               hub,
		cfg:               cfg,
		boards:            newBoardRegistry(),
		now:               time.Now,
	}
}

func (s *DashboardServiceImpl) window(req attendance.DashboardRequest) (int, *time.Location) {
	days := req.Days
	if days <= 0 {
		days = s.cfg.DefaultDays
	}
	return days, req.Location(s.cfg.Location)
}

// Load implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Load(ctx context.Context, userID string, req attendance.DashboardRequest) (dashboard.View, error) {
	days, loc := s.window(req)
	snap := s.refresh(ctx, userID, days, loc)
	return s.compose(snap, req.Filter(), loc), nil
}

// Current implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Current(ctx context.Context, userID string, req attendance.DashboardRequest) (dashboard.View, error) {
	days, loc := s.window(req)
	board := s.boards.get(windowKey(userID, days, loc))
	board.touch(s.now())

	snap, ok := board.Current()
	if !ok {
		snap = s.refresh(ctx, userID, days, loc)
	}
	return s.compose(snap, req.Filter(), loc), nil
}

// Markers implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Markers(ctx context.Context, userID string, req attendance.DashboardRequest) (dashboard.MapResponse, error) {
	view, err := s.Current(ctx, userID, req)
	if err != nil {
		return dashboard.MapResponse{}, err
	}

	collector := NewMarkerCollector()
	PlotMarkers(collector, view.Rows, view.Location, s.cfg.Locale)
	return collector.Response(), nil
}

// Chart implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Chart(ctx context.Context, userID string, req attendance.ChartRequest) (attendance.ChartResponse, error) {
	loc := s.cfg.Location
	if req.Timezone != "" {
		if l, err := time.LoadLocation(req.Timezone); err == nil {
			loc = l
		}
	}
	return s.attendanceService.DailyCounts(ctx, userID, req, loc)
}

// Subscribe implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Subscribe(userID string) (chan sse.Event, func()) {
	for _, board := range s.boards.boardsOf(userID) {
		board.touch(s.now())
	}
	return s.hub.Subscribe(userID)
}

// RefreshSubscribed implements dashboard.DashboardService.
func (s *DashboardServiceImpl) RefreshSubscribed(ctx context.Context) (int, error) {
	refreshed := 0
	for _, userID := range s.hub.Users() {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		for _, board := range s.boards.boardsOf(userID) {
			snap, ok := board.Current()
			if !ok {
				continue
			}
			s.refresh(ctx, userID, snap.days, snap.loc)
			refreshed++
		}
	}

	if evicted := s.boards.evict(s.now().Add(-boardIdleTTL), func(userID string) bool {
		return s.hub.SubscriberCount(userID) > 0
	}); evicted > 0 {
		slog.Debug("Evicted idle dashboard boards", "evicted", evicted)
	}
	return refreshed, nil
}

// refresh runs one load under a fresh token and returns the snapshot that is
// current once it completes. A load that finishes after a later one is discarded.
func (s *DashboardServiceImpl) refresh(ctx context.Context, userID string, days int, loc *time.Location) snapshot {
	board := s.boards.get(windowKey(userID, days, loc))
	board.touch(s.now())
	token := board.Begin()

	result, err := s.attendanceService.Load(ctx, userID, time.Duration(days)*24*time.Hour, loc)
	snap := snapshot{
		token:    token,
		days:     days,
		loc:      loc,
		result:   result,
		loadedAt: s.now(),
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			if current, ok := board.Current(); ok {
				return current
			}
		}
		slog.Error("Failed to load attendance dashboard",
			"user_id", userID,
			"days", days,
			"error", err,
		)
		snap.result = attendance.LoadResult{Rows: []attendance.PresenceRow{}}
		snap.message = s.cfg.Locale.LoadFailed
	}

	current, applied := board.Apply(snap)
	if !applied {
		slog.Debug("Discarded stale dashboard load",
			"user_id", userID,
			"token", token,
			"current_token", current.token,
		)
		return current
	}

	s.hub.Publish(userID, sse.Event{
		Event: sse.EventRefreshed,
		Data:  map[string]interface{}{"token": current.token},
	})
	return current
}

func (s *DashboardServiceImpl) compose(snap snapshot, filter attendance.ViewFilter, loc *time.Location) dashboard.View {
	filter = filter.Normalize()
	rows := attendanceservice.Compose(snap.result.Rows, filter, s.now(), loc)

	view := dashboard.View{
		Token:        snap.token,
		CompanyID:    snap.result.CompanyID,
		CompanyName:  snap.result.CompanyName,
		Rows:         rows,
		Summary:      attendanceservice.Summarize(rows),
		TodayMinutes: snap.result.TodayMinutes,
		Warnings:     []string{},
		Message:      snap.message,
		Filter:       filter,
		Days:         snap.days,
		LoadedAt:     snap.loadedAt,
		Location:     loc,
	}
	if snap.result.Truncated {
		view.Warnings = append(view.Warnings, s.cfg.Locale.TruncationWarning(s.cfg.MaxEmployees))
	}
	return view
}
