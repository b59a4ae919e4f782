package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/validator"
)

// ========================================
// VIEW FILTER
// ========================================

type KindFilter string

const (
	KindFilterAll KindFilter = "ALL"
	KindFilterIn  KindFilter = "IN"
	KindFilterOut KindFilter = "OUT"
)

type DateFilter string

const (
	DateFilterAll   DateFilter = "ALL"
	DateFilterToday DateFilter = "TODAY"
)

type ViewMode string

const (
	ViewModeDetailed     ViewMode = "DETAILED"
	ViewModeConsolidated ViewMode = "CONSOLIDATED"
)

// ViewFilter is the user-selected view over reconciled rows.
type ViewFilter struct {
	SearchText string
	Kind       KindFilter
	Date       DateFilter
	Mode       ViewMode
}

// Normalize fills empty enum fields with their pass-through values.
func (f ViewFilter) Normalize() ViewFilter {
	if f.Kind == "" {
		f.Kind = KindFilterAll
	}
	if f.Date == "" {
		f.Date = DateFilterAll
	}
	if f.Mode == "" {
		f.Mode = ViewModeDetailed
	}
	return f
}

func (f ViewFilter) Validate() error {
	var errs validator.ValidationErrors
	f = f.Normalize()

	if !validator.IsInSlice(string(f.Kind), []string{string(KindFilterAll), string(KindFilterIn), string(KindFilterOut)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: ErrInvalidKindFilter.Error(),
		})
	}

	if !validator.IsInSlice(string(f.Date), []string{string(DateFilterAll), string(DateFilterToday)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidDateFilter.Error(),
		})
	}

	if !validator.IsInSlice(string(f.Mode), []string{string(ViewModeDetailed), string(ViewModeConsolidated)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: ErrInvalidViewMode.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// DASHBOARD REQUEST
// ========================================

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 90
)

type DashboardRequest struct {
	Days     int    `json:"days"` // 0 selects the configured default
	Search   string `json:"q"`
	Kind     string `json:"kind"`
	Date     string `json:"date"`
	Mode     string `json:"mode"`
	Timezone string `json:"tz"`
}

func (r *DashboardRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Days != 0 && (r.Days < 1 || r.Days > MaxWindowDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be between 1 and " + validator.Itoa(MaxWindowDays),
		})
	}

	if r.Timezone != "" {
		if !validator.IsValidTimezone(r.Timezone) {
			errs = append(errs, validator.ValidationError{
				Field:   "tz",
				Message: ErrInvalidTimezone.Error(),
			})
		}
	}

	if err := r.Filter().Validate(); err != nil {
		if filterErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, filterErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter converts the raw query values into a normalized ViewFilter.
func (r DashboardRequest) Filter() ViewFilter {
	return ViewFilter{
		SearchText: r.Search,
		Kind:       KindFilter(strings.ToUpper(strings.TrimSpace(r.Kind))),
		Date:       DateFilter(strings.ToUpper(strings.TrimSpace(r.Date))),
		Mode:       ViewMode(strings.ToUpper(strings.TrimSpace(r.Mode))),
	}.Normalize()
}

// Location resolves the viewer timezone, falling back to def when none was sent.
func (r DashboardRequest) Location(def *time.Location) *time.Location {
	if r.Timezone == "" {
		return def
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return def
	}
	return loc
}

// ========================================
// CHART REQUEST
// ========================================

type ChartRequest struct {
	StartDate string `json:"start"` // YYYY-MM-DD, inclusive
	EndDate   string `json:"end"`   // YYYY-MM-DD, inclusive
	Timezone  string `json:"tz"`
}

func (r *ChartRequest) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var startOK, endOK bool
	if r.StartDate != "" {
		if start, startOK = validator.IsValidDate(r.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != "" {
		if end, endOK = validator.IsValidDate(r.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK {
		if start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must not be before start",
			})
		} else if end.Sub(start) > MaxWindowDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "range must not exceed " + validator.Itoa(MaxWindowDays) + " days",
			})
		}
	}

	if r.Timezone != "" {
		if !validator.IsValidTimezone(r.Timezone) {
			errs = append(errs, validator.ValidationError{
				Field:   "tz",
				Message: ErrInvalidTimezone.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type PresenceRowResponse struct {
	ID                 string   `json:"id"`
	UserID             *string  `json:"user_id,omitempty"`
	Kind               string   `json:"kind"`
	OccurredAt         *string  `json:"occurred_at,omitempty"`
	LocalTime          *string  `json:"local_time,omitempty"`
	EmployeeName       string   `json:"employee_name"`
	Email              string   `json:"email"`
	CompanyID          string   `json:"company_id,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	LocationAuthorized bool     `json:"location_authorized"`
	MinutesWorked      int      `json:"minutes_worked"`
	Duration           string   `json:"duration"`
}

// NewPresenceRowResponse maps a reconciled row for the JSON API. LocalTime is
// rendered in loc with the locale layout.
func NewPresenceRowResponse(row PresenceRow, loc *time.Location, locale format.Locale) PresenceRowResponse {
	resp := PresenceRowResponse{
		ID:                 row.ID,
		Kind:               string(row.Kind),
		EmployeeName:       row.Employee.DisplayName,
		Email:              row.Employee.Email,
		CompanyID:          row.Employee.CompanyID,
		LocationAuthorized: row.LocationAuthorized(),
		MinutesWorked:      row.MinutesWorked,
		Duration:           format.Duration(row.MinutesWorked),
	}
	if row.UserID != "" {
		userID := row.UserID
		resp.UserID = &userID
	}
	if row.OccurredAt != nil {
		iso := format.ISOTimestamp(*row.OccurredAt)
		local := locale.HumanTimestamp(*row.OccurredAt, loc)
		resp.OccurredAt = &iso
		resp.LocalTime = &local
	}
	if row.Location != nil {
		resp.Latitude = row.Location.Latitude
		resp.Longitude = row.Location.Longitude
	}
	return resp
}

func NewPresenceRowResponses(rows []PresenceRow, loc *time.Location, locale format.Locale) []PresenceRowResponse {
	out := make([]PresenceRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewPresenceRowResponse(row, loc, locale))
	}
	return out
}

type Summary struct {
	Total int `json:"total"`
	In    int `json:"in"`
	Out   int `json:"out"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type ChartResponse struct {
	StartDate string     `json:"start"`
	EndDate   string     `json:"end"`
	Series    []DayCount `json:"series"`
}
