package geo

import "math"

const (
	earthRadius        = 6371000 // meters
	earthCircumference = 40075016.686

	MinZoom = 3
	MaxZoom = 15
)

// IsValid reports whether lat/lng is a point on the map.
func IsValid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DistanceMeters is the haversine distance between two points.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// ZoomForSpan picks the web-map zoom level at which span meters roughly fill
// the viewport. A zero span (one marker) gets MaxZoom.
func ZoomForSpan(span float64) int {
	if span <= 0 {
		return MaxZoom
	}
	zoom := int(math.Floor(math.Log2(earthCircumference / span)))
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
