package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(13.6929, -89.2182))
	assert.True(t, IsValid(-90, 180))
	assert.False(t, IsValid(90.1, 0))
	assert.False(t, IsValid(0, -180.5))
	assert.False(t, IsValid(math.NaN(), 0))
}

func TestDistanceMeters(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(13.69, -89.21, 13.69, -89.21))

	// one degree of latitude is about 111.2 km
	assert.InDelta(t, 111195, DistanceMeters(0, 0, 1, 0), 10)
}

func TestZoomForSpan(t *testing.T) {
	tests := []struct {
		span float64
		want int
	}{
		{0, MaxZoom},
		{500, MaxZoom},
		{100000, 8},
		{earthCircumference, MinZoom},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZoomForSpan(tt.span), tt.span)
	}
}
