package attendance

import (
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
)

var testLoc = time.FixedZone("CST", -6*3600)

func at(s string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05.000", s, testLoc)
	if err != nil {
		panic(err)
	}
	return &t
}

func event(id, userID string, kind attendance.Kind, ts *time.Time) attendance.Event {
	return attendance.Event{
		ID:         id,
		UserID:     userID,
		Kind:       kind,
		OccurredAt: ts,
		Employee: attendance.Employee{
			DisplayName: "Employee " + userID,
			Email:       userID + "@example.com",
			CompanyID:   "acme",
		},
	}
}

func ids(rows []attendance.PresenceRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func eventIDs(events []attendance.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}
