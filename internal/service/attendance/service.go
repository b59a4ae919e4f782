package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultEventLimit = 500
	chartEventLimit   = 5000
	chartDefaultDays  = 7
)

type AttendanceServiceImpl struct {
	attendance.EventStore
	scopeService company.ScopeService
	eventLimit   int
	now          func() time.Time
}

func NewAttendanceService(store attendance.EventStore, scopeService company.ScopeService, eventLimit int) attendance.AttendanceService {
	if eventLimit <= 0 {
		eventLimit = DefaultEventLimit
	}
	return &AttendanceServiceImpl{
		EventStore:   store,
		scopeService: scopeService,
		eventLimit:   eventLimit,
		now:          time.Now,
	}
}

// Load implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Load(ctx context.Context, userID string, window time.Duration, loc *time.Location) (attendance.LoadResult, error) {
	if loc == nil {
		loc = time.UTC
	}

	scope, err := s.scopeService.ResolveScope(ctx, userID)
	if err != nil {
		return attendance.LoadResult{}, err
	}

	result := attendance.LoadResult{
		CompanyID:   scope.CompanyID,
		CompanyName: scope.CompanyName,
		Rows:        []attendance.PresenceRow{},
		Truncated:   scope.Truncated,
	}
	if scope.IsEmpty() {
		result.EmptyScope = true
		return result, nil
	}

	now := s.now()
	from := now.Add(-window)
	today := now.In(loc).Format(attendance.DayLayout)

	var (
		events     []attendance.Event
		todayFacts []attendance.DailyMinutesFact
	)

	// The event window and today's minutes do not depend on each other.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		events, err = s.EventStore.QueryEvents(gctx, attendance.EventQuery{
			UserIDs: scope.UserIDs,
			From:    &from,
			Limit:   s.eventLimit,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		todayFacts, err = s.EventStore.QueryDailyMinutes(gctx, scope.UserIDs, []string{today})
		if err != nil {
			return fmt.Errorf("query today minutes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.LoadResult{}, fmt.Errorf("%w: %w", attendance.ErrEventStoreUnavailable, err)
	}

	retained := Collapse(events)

	var facts []attendance.DailyMinutesFact
	if userIDs, days := MinutesKeys(retained, loc); len(userIDs) > 0 {
		facts, err = s.EventStore.QueryDailyMinutes(ctx, userIDs, days)
		if err != nil {
			return attendance.LoadResult{}, fmt.Errorf("%w: query minutes: %w", attendance.ErrEventStoreUnavailable, err)
		}
	}

	result.Rows = Join(retained, NewMinutesIndex(facts), loc)
	for _, f := range todayFacts {
		if f.Minutes > 0 {
			result.TodayMinutes += f.Minutes
		}
	}

	slog.Debug("Attendance loaded",
		"company_id", scope.CompanyID,
		"events", len(events),
		"rows", len(result.Rows),
		"truncated", scope.Truncated,
	)

	return result, nil
}

// DailyCounts implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DailyCounts(ctx context.Context, userID string, req attendance.ChartRequest, loc *time.Location) (attendance.ChartResponse, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, end := s.chartRange(req, loc)
	resp := attendance.ChartResponse{
		StartDate: start.Format(attendance.DayLayout),
		EndDate:   end.Format(attendance.DayLayout),
	}

	scope, err := s.scopeService.ResolveScope(ctx, userID)
	if err != nil {
		return attendance.ChartResponse{}, err
	}
	if scope.IsEmpty() {
		resp.Series = CountByDay(nil, start, end, loc)
		return resp, nil
	}

	from := start
	to := end.AddDate(0, 0, 1).Add(-time.Millisecond)
	events, err := s.EventStore.QueryEvents(ctx, attendance.EventQuery{
		UserIDs: scope.UserIDs,
		From:    &from,
		To:      &to,
		Limit:   chartEventLimit,
	})
	if err != nil {
		return attendance.ChartResponse{}, fmt.Errorf("%w: query chart events: %w", attendance.ErrEventStoreUnavailable, err)
	}

	resp.Series = CountByDay(events, start, end, loc)
	return resp, nil
}

// chartRange returns local midnights of the first and last day. Without
// explicit dates it covers the last seven days including today.
func (s *AttendanceServiceImpl) chartRange(req attendance.ChartRequest, loc *time.Location) (time.Time, time.Time) {
	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	end := today
	if req.EndDate != "" {
		if d, err := time.ParseInLocation(attendance.DayLayout, req.EndDate, loc); err == nil {
			end = d
		}
	}
	start := end.AddDate(0, 0, -(chartDefaultDays - 1))
	if req.StartDate != "" {
		if d, err := time.ParseInLocation(attendance.DayLayout, req.StartDate, loc); err == nil {
			start = d
		}
	}
	return start, end
}
