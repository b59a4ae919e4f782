package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
)

// pairWindowMillis is the longest IN to OUT gap that still counts as a pair.
const pairWindowMillis = int64(24 * time.Hour / time.Millisecond)

// Collapse drops every IN event for which the same user has an OUT event
// 0 < t_out - t_in <= 24h later. OUT events, events without a user and
// events without a timestamp are always kept. Input order is preserved.
//
// Several INs before a single OUT are all dropped.
func Collapse(events []attendance.Event) []attendance.Event {
	outs := make(map[string][]int64)
	for _, e := range events {
		if e.Kind != attendance.KindOut || e.UserID == "" {
			continue
		}
		if ms, ok := e.OccurredAtMilli(); ok {
			outs[e.UserID] = append(outs[e.UserID], ms)
		}
	}
	for _, times := range outs {
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	}

	kept := make([]attendance.Event, 0, len(events))
	for _, e := range events {
		if e.Kind == attendance.KindIn && e.UserID != "" {
			if ms, ok := e.OccurredAtMilli(); ok && closedWithin(outs[e.UserID], ms) {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}

// closedWithin reports whether a sorted list of OUT times has one in (in, in+24h].
func closedWithin(outs []int64, in int64) bool {
	i := sort.Search(len(outs), func(i int) bool { return outs[i] > in })
	return i < len(outs) && outs[i]-in <= pairWindowMillis
}

// MinutesKeys returns the distinct users and local days the rows need minutes
// for, in first-seen order, so they can be fetched in one batched query.
func MinutesKeys(events []attendance.Event, loc *time.Location) (userIDs []string, days []string) {
	seenUsers := make(map[string]struct{})
	seenDays := make(map[string]struct{})
	for _, e := range events {
		if e.UserID == "" {
			continue
		}
		day, ok := e.LocalDay(loc)
		if !ok {
			continue
		}
		if _, dup := seenUsers[e.UserID]; !dup {
			seenUsers[e.UserID] = struct{}{}
			userIDs = append(userIDs, e.UserID)
		}
		if _, dup := seenDays[day]; !dup {
			seenDays[day] = struct{}{}
			days = append(days, day)
		}
	}
	return userIDs, days
}

type minutesKey struct {
	userID string
	day    string
}

// MinutesIndex maps (user, local day) to worked minutes. A duplicated key keeps its first fact.
type MinutesIndex map[minutesKey]int

func NewMinutesIndex(facts []attendance.DailyMinutesFact) MinutesIndex {
	idx := make(MinutesIndex, len(facts))
	for _, f := range facts {
		key := minutesKey{userID: f.UserID, day: f.LocalDay}
		if _, dup := idx[key]; dup {
			continue
		}
		minutes := f.Minutes
		if minutes < 0 {
			minutes = 0
		}
		idx[key] = minutes
	}
	return idx
}

// Lookup returns the minutes for the user on day, or 0 when no fact exists.
func (idx MinutesIndex) Lookup(userID, day string) int {
	return idx[minutesKey{userID: userID, day: day}]
}

// Join annotates every event with the worked minutes of its local day.
func Join(events []attendance.Event, idx MinutesIndex, loc *time.Location) []attendance.PresenceRow {
	rows := make([]attendance.PresenceRow, 0, len(events))
	for _, e := range events {
		row := attendance.PresenceRow{Event: copyEvent(e)}
		if e.UserID != "" {
			if day, ok := e.LocalDay(loc); ok {
				row.MinutesWorked = idx.Lookup(e.UserID, day)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Reconcile collapses paired events and joins the minutes facts.
func Reconcile(events []attendance.Event, facts []attendance.DailyMinutesFact, loc *time.Location) []attendance.PresenceRow {
	return Join(Collapse(events), NewMinutesIndex(facts), loc)
}

// copyEvent detaches the row from the pointers of the fetched event.
func copyEvent(e attendance.Event) attendance.Event {
	if e.OccurredAt != nil {
		t := *e.OccurredAt
		e.OccurredAt = &t
	}
	if e.Location != nil {
		l := *e.Location
		if l.Latitude != nil {
			lat := *l.Latitude
			l.Latitude = &lat
		}
		if l.Longitude != nil {
			lng := *l.Longitude
			l.Longitude = &lng
		}
		e.Location = &l
	}
	return e
}
