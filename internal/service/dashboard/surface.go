package dashboard

import (
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/geo"
)

// PlotMarkers clears surface, adds one marker per located row and fits the
// view to them. It returns the number of markers drawn.
func PlotMarkers(surface dashboard.Surface, rows []attendance.PresenceRow, loc *time.Location, locale format.Locale) int {
	surface.Clear()

	var bounds dashboard.Bounds
	drawn := 0
	for _, row := range rows {
		if !row.HasCoordinates() {
			continue
		}
		lat, lng := *row.Location.Latitude, *row.Location.Longitude
		if !geo.IsValid(lat, lng) {
			continue
		}

		popup := dashboard.Popup{
			KindLabel:    locale.KindLabel(string(row.Kind)),
			EmployeeName: row.Employee.DisplayName,
			Email:        row.Employee.Email,
			Authorized:   locale.YesNo(row.LocationAuthorized()),
		}
		if row.OccurredAt != nil {
			popup.LocalTime = locale.HumanTimestamp(*row.OccurredAt, loc)
		}

		surface.AddMarker(dashboard.Marker{
			EventID:   row.ID,
			Latitude:  lat,
			Longitude: lng,
			Kind:      row.Kind,
			Color:     dashboard.MarkerColor(row.Kind),
			Popup:     popup,
		})

		if drawn == 0 {
			bounds = dashboard.Bounds{South: lat, West: lng, North: lat, East: lng}
		} else {
			bounds = bounds.Extend(lat, lng)
		}
		drawn++
	}

	if drawn > 0 {
		surface.FitBounds(bounds)
	}
	return drawn
}

// MarkerCollector is a Surface that records what was drawn for the JSON API.
type MarkerCollector struct {
	markers []dashboard.Marker
	bounds  *dashboard.Bounds
}

func NewMarkerCollector() *MarkerCollector {
	return &MarkerCollector{}
}

func (c *MarkerCollector) Clear() {
	c.markers = c.markers[:0]
	c.bounds = nil
}

func (c *MarkerCollector) AddMarker(m dashboard.Marker) {
	c.markers = append(c.markers, m)
}

func (c *MarkerCollector) FitBounds(b dashboard.Bounds) {
	c.bounds = &b
}

func (c *MarkerCollector) Response() dashboard.MapResponse {
	resp := dashboard.MapResponse{
		Markers: make([]dashboard.MarkerResponse, 0, len(c.markers)),
		Center:  dashboard.DefaultCenter,
	}
	for _, m := range c.markers {
		resp.Markers = append(resp.Markers, dashboard.MarkerResponse{
			EventID:   m.EventID,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
			Kind:      string(m.Kind),
			Color:     m.Color,
			Popup: dashboard.PopupResponse{
				KindLabel:    m.Popup.KindLabel,
				LocalTime:    m.Popup.LocalTime,
				EmployeeName: m.Popup.EmployeeName,
				Email:        m.Popup.Email,
				Authorized:   m.Popup.Authorized,
			},
		})
	}
	if c.bounds != nil {
		resp.Bounds = &dashboard.BoundsResponse{
			South: c.bounds.South,
			West:  c.bounds.West,
			North: c.bounds.North,
			East:  c.bounds.East,
		}
		resp.Center = dashboard.CenterResponse{
			Latitude:  (c.bounds.South + c.bounds.North) / 2,
			Longitude: (c.bounds.West + c.bounds.East) / 2,
			Zoom:      geo.ZoomForSpan(geo.DistanceMeters(c.bounds.South, c.bounds.West, c.bounds.North, c.bounds.East)),
		}
	}
	return resp
}
