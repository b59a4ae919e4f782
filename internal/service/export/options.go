package export

import (
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
)

// SheetName is the single worksheet of a spreadsheet export.
const SheetName = "Fichajes"

// Options select the labels and the timezone of human readable timestamps.
type Options struct {
	Locale   format.Locale
	Location *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// record holds the six export columns of one row.
type record struct {
	Employee   string
	Email      string
	Kind       string
	Timestamp  string
	Authorized string
	Duration   string
}

func (r record) strings() []string {
	return []string{r.Employee, r.Email, r.Kind, r.Timestamp, r.Authorized, r.Duration}
}

// newRecord renders a row. human selects the locale timestamp over ISO-8601 UTC.
func newRecord(row attendance.PresenceRow, opts Options, human bool) record {
	r := record{
		Employee:   row.Employee.DisplayName,
		Email:      row.Employee.Email,
		Kind:       string(row.Kind),
		Authorized: opts.Locale.YesNo(row.LocationAuthorized()),
		Duration:   format.Duration(row.MinutesWorked),
	}
	if row.OccurredAt != nil {
		if human {
			r.Timestamp = opts.Locale.HumanTimestamp(*row.OccurredAt, opts.location())
		} else {
			r.Timestamp = format.ISOTimestamp(*row.OccurredAt)
		}
	}
	return r
}
