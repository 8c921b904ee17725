package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traffic-route-matcher/internal/domain"
)

func TestPointOnLineSegment_ToleranceBoundary(t *testing.T) {
	a := domain.Location{Lat: -26.6500, Lng: 153.0900}
	b := domain.Location{Lat: -26.6505, Lng: 153.0903}
	p := domain.Location{Lat: -26.65024, Lng: 153.09016}

	d := perpendicularDistance(ToCartesian(p), ToCartesian(a), ToCartesian(b))
	require.Greater(t, d, 0.0)

	assert.True(t, PointOnLineSegment(p, a, b, d), "distance equal to tolerance must match")
	assert.False(t, PointOnLineSegment(p, a, b, math.Nextafter(d, 0)), "distance just above tolerance must not match")
	assert.False(t, PointOnLineSegment(p, a, b, d-1e-6))
}

func TestOrientation(t *testing.T) {
	p, q := Point{0, 0}, Point{10, 0}

	assert.Equal(t, collinear, orientation(p, q, Point{20, 0}))
	assert.Equal(t, collinear, orientation(p, q, Point{20, 1e-12}))
	assert.NotEqual(t, orientation(p, q, Point{5, 1}), orientation(p, q, Point{5, -1}))
}
