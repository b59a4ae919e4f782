package dashboard

import "github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"

const (
	MarkerColorIn    = "green"
	MarkerColorOut   = "red"
	MarkerColorOther = "gray"
)

// MarkerColor picks the pin color for a clock action.
func MarkerColor(kind attendance.Kind) string {
	switch kind {
	case attendance.KindIn:
		return MarkerColorIn
	case attendance.KindOut:
		return MarkerColorOut
	}
	return MarkerColorOther
}

type Popup struct {
	KindLabel    string
	LocalTime    string
	EmployeeName string
	Email        string
	Authorized   string
}

type Marker struct {
	EventID   string
	Latitude  float64
	Longitude float64
	Kind      attendance.Kind
	Color     string
	Popup     Popup
}

type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// Extend grows b so that it contains the point.
func (b Bounds) Extend(lat, lng float64) Bounds {
	if lat < b.South {
		b.South = lat
	}
	if lat > b.North {
		b.North = lat
	}
	if lng < b.West {
		b.West = lng
	}
	if lng > b.East {
		b.East = lng
	}
	return b
}

// Surface is a drawable map. Implementations keep their own state across
// refreshes, callers always Clear before plotting a new view.
type Surface interface {
	Clear()
	AddMarker(m Marker)
	FitBounds(b Bounds)
}
