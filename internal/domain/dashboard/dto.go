package dashboard

import (
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
)

// ========== SNAPSHOT ==========

type FilterResponse struct {
	Search string `json:"q"`
	Kind   string `json:"kind"`
	Date   string `json:"date"`
	Mode   string `json:"mode"`
	Days   int    `json:"days"`
}

// SnapshotResponse is the body of GET /dashboard and of every stream event
type SnapshotResponse struct {
	Token        uint64                           `json:"token"`
	CompanyID    string                           `json:"company_id"`
	CompanyName  string                           `json:"company_name"`
	Rows         []attendance.PresenceRowResponse `json:"rows"`
	Summary      attendance.Summary               `json:"summary"`
	TodayMinutes int                              `json:"today_minutes"`
	TodayWorked  string                           `json:"today_worked"` // compact label, e.g. "7 h 30 m"
	Warnings     []string                         `json:"warnings"`
	Message      string                           `json:"message,omitempty"`
	Filter       FilterResponse                   `json:"filter"`
	Timezone     string                           `json:"timezone"`
	LoadedAt     string                           `json:"loaded_at"`
}

func NewSnapshotResponse(v View, locale format.Locale) SnapshotResponse {
	loc := v.Location
	if loc == nil {
		loc = time.UTC
	}
	warnings := v.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	resp := SnapshotResponse{
		Token:        v.Token,
		CompanyID:    v.CompanyID,
		CompanyName:  v.CompanyName,
		Rows:         attendance.NewPresenceRowResponses(v.Rows, loc, locale),
		Summary:      v.Summary,
		TodayMinutes: v.TodayMinutes,
		TodayWorked:  format.CompactDuration(v.TodayMinutes),
		Warnings:     warnings,
		Message:      v.Message,
		Filter: FilterResponse{
			Search: v.Filter.SearchText,
			Kind:   string(v.Filter.Kind),
			Date:   string(v.Filter.Date),
			Mode:   string(v.Filter.Mode),
			Days:   v.Days,
		},
		Timezone: loc.String(),
	}
	if !v.LoadedAt.IsZero() {
		resp.LoadedAt = format.ISOTimestamp(v.LoadedAt)
	}
	return resp
}

// ========== MAP ==========

type PopupResponse struct {
	KindLabel    string `json:"kind_label"`
	LocalTime    string `json:"local_time"`
	EmployeeName string `json:"employee_name"`
	Email        string `json:"email"`
	Authorized   string `json:"authorized"`
}

type MarkerResponse struct {
	EventID   string        `json:"event_id"`
	Latitude  float64       `json:"lat"`
	Longitude float64       `json:"lng"`
	Kind      string        `json:"kind"`
	Color     string        `json:"color"`
	Popup     PopupResponse `json:"popup"`
}

type BoundsResponse struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

type CenterResponse struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Zoom      int     `json:"zoom"`
}

// DefaultCenter is where the map opens before any marker is known (San Salvador).
var DefaultCenter = CenterResponse{Latitude: 13.6929, Longitude: -89.2182, Zoom: 12}

// MapResponse is the body of GET /dashboard/map. Bounds is nil when no row has coordinates.
type MapResponse struct {
	Markers []MarkerResponse `json:"markers"`
	Bounds  *BoundsResponse  `json:"bounds"`
	Center  CenterResponse   `json:"center"`
}
