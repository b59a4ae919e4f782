package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/geo"
)

type recordingSurface struct {
	cleared int
	markers []dashboard.Marker
	bounds  []dashboard.Bounds
}

func (s *recordingSurface) Clear() {
	s.cleared++
	s.markers = nil
}

func (s *recordingSurface) AddMarker(m dashboard.Marker) { s.markers = append(s.markers, m) }

func (s *recordingSurface) FitBounds(b dashboard.Bounds) { s.bounds = append(s.bounds, b) }

func TestPlotMarkers(t *testing.T) {
	rows := []attendance.PresenceRow{
		located(presenceRow("in", "u1", "Ana", attendance.KindIn, serviceNow), 10, 20, true),
		located(presenceRow("out", "u2", "Luis", attendance.KindOut, serviceNow), -5, 30, false),
		located(presenceRow("break", "u3", "Marta", attendance.Kind("BREAK"), serviceNow), 0, 25, false),
		located(presenceRow("bad", "u4", "Out of range", attendance.KindIn, serviceNow), 95, 0, false),
		presenceRow("nowhere", "u5", "No location", attendance.KindIn, serviceNow),
	}
	surface := &recordingSurface{}

	drawn := PlotMarkers(surface, rows, testLoc, format.English)

	assert.Equal(t, 3, drawn)
	assert.Equal(t, 1, surface.cleared)
	require.Len(t, surface.markers, 3)
	assert.Equal(t, dashboard.MarkerColorIn, surface.markers[0].Color)
	assert.Equal(t, "Clock-in", surface.markers[0].Popup.KindLabel)
	assert.Equal(t, dashboard.MarkerColorOut, surface.markers[1].Color)
	assert.Equal(t, dashboard.MarkerColorOther, surface.markers[2].Color)
	assert.Equal(t, "BREAK", surface.markers[2].Popup.KindLabel)

	require.Len(t, surface.bounds, 1)
	assert.Equal(t, dashboard.Bounds{South: -5, West: 20, North: 10, East: 30}, surface.bounds[0])
}

func TestPlotMarkers_NoLocatedRowsKeepsView(t *testing.T) {
	surface := &recordingSurface{}

	drawn := PlotMarkers(surface, []attendance.PresenceRow{
		presenceRow("nowhere", "u1", "Ana", attendance.KindIn, serviceNow),
	}, testLoc, format.Spanish)

	assert.Equal(t, 0, drawn)
	assert.Equal(t, 1, surface.cleared)
	assert.Empty(t, surface.bounds)
}

func TestMarkerCollector_Response(t *testing.T) {
	c := NewMarkerCollector()

	empty := c.Response()
	assert.Empty(t, empty.Markers)
	assert.NotNil(t, empty.Markers)
	assert.Nil(t, empty.Bounds)
	assert.Equal(t, dashboard.DefaultCenter, empty.Center)

	PlotMarkers(c, []attendance.PresenceRow{
		located(presenceRow("a", "u1", "Ana", attendance.KindIn, serviceNow), 10, 20, true),
		located(presenceRow("b", "u2", "Luis", attendance.KindOut, serviceNow), 14, 24, true),
	}, testLoc, format.Spanish)

	resp := c.Response()
	require.Len(t, resp.Markers, 2)
	assert.Equal(t, 12.0, resp.Center.Latitude)
	assert.Equal(t, 22.0, resp.Center.Longitude)
	assert.Equal(t, geo.ZoomForSpan(geo.DistanceMeters(10, 20, 14, 24)), resp.Center.Zoom)
	assert.Less(t, resp.Center.Zoom, geo.MaxZoom)

	PlotMarkers(c, nil, testLoc, format.Spanish)
	assert.Empty(t, c.Response().Markers)
	assert.Nil(t, c.Response().Bounds)
}
