package attendance

import (
	"time"
)

// Kind is the raw clock action recorded by the device. Values other than IN and
// OUT are kept verbatim and never take part in pairing.
type Kind string

const (
	KindIn  Kind = "IN"
	KindOut Kind = "OUT"
)

// Employee is the denormalized snapshot joined to an event at query time.
type Employee struct {
	DisplayName string
	Email       string
	CompanyID   string
}

// Location is consumed by the map layer only.
type Location struct {
	Latitude   *float64
	Longitude  *float64
	Authorized bool
}

type Event struct {
	ID         string
	UserID     string
	Kind       Kind
	OccurredAt *time.Time
	Location   *Location
	Employee   Employee
}

// HasCoordinates reports whether the event can be placed on a map.
func (e Event) HasCoordinates() bool {
	return e.Location != nil && e.Location.Latitude != nil && e.Location.Longitude != nil
}

func (e Event) LocationAuthorized() bool {
	return e.Location != nil && e.Location.Authorized
}

// OccurredAtMilli returns the timestamp truncated to millisecond precision.
func (e Event) OccurredAtMilli() (int64, bool) {
	if e.OccurredAt == nil {
		return 0, false
	}
	return e.OccurredAt.UnixMilli(), true
}

// LocalDay returns the calendar day of the event in loc as YYYY-MM-DD.
func (e Event) LocalDay(loc *time.Location) (string, bool) {
	if e.OccurredAt == nil {
		return "", false
	}
	return e.OccurredAt.In(loc).Format(DayLayout), true
}

const DayLayout = "2006-01-02"

// DailyMinutesFact is one row of the externally maintained worked-minutes aggregate.
type DailyMinutesFact struct {
	UserID   string
	LocalDay string
	Minutes  int
}

// PresenceRow is an event annotated with the worked minutes of its local day.
// Rows are built by the reconciler and never modified afterwards.
type PresenceRow struct {
	Event
	MinutesWorked int
}
