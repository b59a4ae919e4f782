package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"golang.org/x/text/cases"
)

// Compose applies the kind, date and search predicates together and, in
// CONSOLIDATED mode, keeps only the latest row per employee.
func Compose(rows []attendance.PresenceRow, filter attendance.ViewFilter, now time.Time, loc *time.Location) []attendance.PresenceRow {
	filter = filter.Normalize()
	if loc == nil {
		loc = time.UTC
	}
	m := newMatcher(filter, now, loc)

	out := make([]attendance.PresenceRow, 0, len(rows))
	for _, row := range rows {
		if m.matches(row) {
			out = append(out, row)
		}
	}

	if filter.Mode == attendance.ViewModeConsolidated {
		return Consolidate(out)
	}
	return out
}

type matcher struct {
	kind   attendance.KindFilter
	today  string // empty unless the TODAY filter is on
	needle string
	fold   cases.Caser
	loc    *time.Location
}

func newMatcher(filter attendance.ViewFilter, now time.Time, loc *time.Location) *matcher {
	m := &matcher{
		kind: filter.Kind,
		fold: cases.Fold(),
		loc:  loc,
	}
	if filter.Date == attendance.DateFilterToday {
		m.today = now.In(loc).Format(attendance.DayLayout)
	}
	if search := strings.TrimSpace(filter.SearchText); search != "" {
		m.needle = m.fold.String(search)
	}
	return m
}

func (m *matcher) matches(row attendance.PresenceRow) bool {
	if m.kind != attendance.KindFilterAll && string(row.Kind) != string(m.kind) {
		return false
	}
	if m.today != "" {
		day, ok := row.LocalDay(m.loc)
		if !ok || day != m.today {
			return false
		}
	}
	if m.needle != "" {
		name := m.fold.String(row.Employee.DisplayName)
		email := m.fold.String(row.Employee.Email)
		if !strings.Contains(name, m.needle) && !strings.Contains(email, m.needle) {
			return false
		}
	}
	return true
}

// consolidationKey groups rows by user id, falling back to email.
func consolidationKey(row attendance.PresenceRow) (string, bool) {
	if row.UserID != "" {
		return "u:" + row.UserID, true
	}
	if row.Employee.Email != "" {
		return "e:" + row.Employee.Email, true
	}
	return "", false
}

// Consolidate keeps one row per employee, the one with the latest timestamp.
// Rows with neither user id nor email are dropped. Ties keep the first row
// seen and untimed rows lose to any timed row. The result is ordered newest
// first with untimed rows last.
func Consolidate(rows []attendance.PresenceRow) []attendance.PresenceRow {
	latest := make(map[string]int)
	out := make([]attendance.PresenceRow, 0, len(rows))

	for _, row := range rows {
		key, ok := consolidationKey(row)
		if !ok {
			continue
		}
		i, seen := latest[key]
		if !seen {
			latest[key] = len(out)
			out = append(out, row)
			continue
		}
		if newer(row, out[i]) {
			out[i] = row
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return newer(out[i], out[j])
	})
	return out
}

// newer reports whether a is strictly later than b. Untimed rows are never newer.
func newer(a, b attendance.PresenceRow) bool {
	ams, aok := a.OccurredAtMilli()
	bms, bok := b.OccurredAtMilli()
	switch {
	case !aok:
		return false
	case !bok:
		return true
	default:
		return ams > bms
	}
}

// Summarize counts the rows of a composed view by kind.
func Summarize(rows []attendance.PresenceRow) attendance.Summary {
	s := attendance.Summary{Total: len(rows)}
	for _, row := range rows {
		switch row.Kind {
		case attendance.KindIn:
			s.In++
		case attendance.KindOut:
			s.Out++
		}
	}
	return s
}

// CountByDay counts timed events per local day for every day of [start, end].
func CountByDay(events []attendance.Event, start, end time.Time, loc *time.Location) []attendance.DayCount {
	counts := make(map[string]int)
	for _, e := range events {
		if day, ok := e.LocalDay(loc); ok {
			counts[day]++
		}
	}

	var series []attendance.DayCount
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(attendance.DayLayout)
		series = append(series, attendance.DayCount{Day: key, Count: counts[key]})
	}
	return series
}
