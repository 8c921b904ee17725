package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/matching"
	"github.com/traffic-route-matcher/internal/routeindex"
)

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Geocode(ctx context.Context, roadName, locality, description string) (domain.Location, error) {
	args := m.Called(ctx, roadName, locality, description)
	return args.Get(0).(domain.Location), args.Error(1)
}

// loc строит точку из локальных единиц (1 единица = 1e-5 градуса)
func loc(x, y float64) domain.Location {
	return domain.Location{Lat: y * 1e-5, Lng: x * 1e-5}
}

// coord строит сырую координату [lng, lat] в локальных единицах
func coord(x, y float64) domain.RawCoordinate {
	return domain.RawCoordinate{x * 1e-5, y * 1e-5}
}

func testIndex() *routeindex.Index {
	return routeindex.New([]domain.RouteDirection{
		{RouteID: "600-4289", Direction: "Caloundra station", Path: []domain.Location{loc(0, 0), loc(0, 10)}},
		{RouteID: "600-4290", Direction: "Maroochydore station", Path: []domain.Location{loc(0, 10), loc(0, 0)}},
		{RouteID: "615", Direction: "Kawana", Path: []domain.Location{loc(20, 0), loc(20, 10)}},
		{RouteID: "700", Direction: "Empty", Path: nil},
	})
}

func TestMatcher_FindAffectedRoutes_Polyline(t *testing.T) {
	matcher := matching.NewMatcher(testIndex(), zap.NewNop())

	events := []domain.TrafficEvent{
		{
			ID:          "evt-1",
			Description: "Roadworks",
			Coordinates: []domain.RawCoordinate{coord(-5, 5), coord(5, 5)},
		},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, nil)

	require.Contains(t, result, "evt-1")
	match := result["evt-1"]
	assert.Equal(t, domain.GeometryPolyline, match.EventType)
	assert.Equal(t, "polyline 2 points", match.Location)
	assert.Equal(t, "Roadworks", match.Description)

	require.Len(t, match.AffectedDirections, 2)
	first := match.AffectedDirections[0]
	assert.Equal(t, "600-4289", first.RouteID)
	assert.Equal(t, "Caloundra station", first.Direction)
	assert.Equal(t, domain.IntersectionPolyline, first.IntersectionType)
	assert.Equal(t, []int{0}, first.SegmentIndices)
	assert.Equal(t, 1, first.TotalSegments)
	assert.Equal(t, "600-4290", match.AffectedDirections[1].RouteID)
}

func TestMatcher_FindAffectedRoutes_SkipsInvalidCoordinates(t *testing.T) {
	matcher := matching.NewMatcher(testIndex(), zap.NewNop())

	events := []domain.TrafficEvent{
		{
			ID: "evt-1",
			Coordinates: []domain.RawCoordinate{
				{"not-a-number", 0.0},
				coord(15, 5),
				{1.0},
				{"0.00025", "0.00005"},
			},
		},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, nil)

	require.Contains(t, result, "evt-1")
	match := result["evt-1"]
	assert.Equal(t, "polyline 2 points", match.Location)
	require.Len(t, match.AffectedDirections, 1)
	assert.Equal(t, "615", match.AffectedDirections[0].RouteID)
}

func TestMatcher_FindAffectedRoutes_Point(t *testing.T) {
	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, "Nicklin Way", "Warana", "Crash").
		Return(loc(0, 5), nil)

	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	events := []domain.TrafficEvent{
		{ID: "evt-2", RoadName: "Nicklin Way", Locality: "Warana", Description: "Crash"},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, geocoder)

	require.Contains(t, result, "evt-2")
	match := result["evt-2"]
	assert.Equal(t, domain.GeometryPoint, match.EventType)
	require.Len(t, match.AffectedDirections, 2)
	assert.Equal(t, domain.IntersectionPointOnRoute, match.AffectedDirections[0].IntersectionType)
	assert.Equal(t, []int{0}, match.AffectedDirections[0].SegmentIndices)
	geocoder.AssertExpectations(t)
}

func TestMatcher_FindAffectedRoutes_SingleCoordinateFallsBackToGeocoding(t *testing.T) {
	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, "Kawana Way", "Birtinya", "").
		Return(loc(20, 3), nil)

	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	events := []domain.TrafficEvent{
		{ID: "evt-3", RoadName: "Kawana Way", Locality: "Birtinya", Coordinates: []domain.RawCoordinate{coord(0, 5)}},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, geocoder)

	require.Contains(t, result, "evt-3")
	require.Len(t, result["evt-3"].AffectedDirections, 1)
	assert.Equal(t, "615", result["evt-3"].AffectedDirections[0].RouteID)
}

func TestMatcher_FindAffectedRoutes_SkippedEvents(t *testing.T) {
	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, "Unknown Rd", "Nowhere", "").
		Return(domain.Location{}, domain.ErrGeocodeNoResult)
	geocoder.On("Geocode", mock.Anything, "Far Rd", "Elsewhere", "").
		Return(loc(100, 100), nil)

	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	events := []domain.TrafficEvent{
		{ID: "no-location"},
		{ID: "no-locality", RoadName: "Nicklin Way"},
		{ID: "geocode-fails", RoadName: "Unknown Rd", Locality: "Nowhere"},
		{ID: "no-match", RoadName: "Far Rd", Locality: "Elsewhere"},
		{ID: "polyline-far", Coordinates: []domain.RawCoordinate{coord(50, 50), coord(60, 60)}},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, geocoder)

	assert.Empty(t, result)
	geocoder.AssertNumberOfCalls(t, "Geocode", 2)
}

func TestMatcher_FindAffectedRoutes_NoGeocoder(t *testing.T) {
	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	events := []domain.TrafficEvent{
		{ID: "evt", RoadName: "Nicklin Way", Locality: "Warana"},
	}

	assert.Empty(t, matcher.FindAffectedRoutes(context.Background(), events, 1, nil))
}

func TestMatcher_FindAffectedRoutes_EmptyInput(t *testing.T) {
	prefilter := &countingPreFilter{}
	matcher := matching.NewMatcher(testIndex(), zap.NewNop(), matching.WithPreFilter(prefilter))

	result := matcher.FindAffectedRoutes(context.Background(), nil, 1, nil)

	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.Zero(t, prefilter.calls)
}

func TestMatcher_FindAffectedRoutes_GeocoderPanicIsIsolated(t *testing.T) {
	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, "Bad Rd", "Warana", "").
		Run(func(mock.Arguments) { panic("boom") }).
		Return(domain.Location{}, nil)

	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	events := []domain.TrafficEvent{
		{ID: "panics", RoadName: "Bad Rd", Locality: "Warana"},
		{ID: "ok", Coordinates: []domain.RawCoordinate{coord(-5, 5), coord(5, 5)}},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, geocoder)

	assert.NotContains(t, result, "panics")
	assert.Contains(t, result, "ok")
}

func TestMatcher_FindAffectedRoutes_ToleranceIsPerCall(t *testing.T) {
	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, "Nicklin Way", "Warana", "").
		Return(loc(3, 5), nil)

	events := []domain.TrafficEvent{{ID: "near", RoadName: "Nicklin Way", Locality: "Warana"}}

	assert.Empty(t, matcher.FindAffectedRoutes(context.Background(), events, matching.DefaultToleranceMeters, geocoder))
	assert.Contains(t, matcher.FindAffectedRoutes(context.Background(), events, 5, geocoder), "near")
}

func TestMatcher_GeocoderErrorIsNotFatal(t *testing.T) {
	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Location{}, errors.New("timeout"))

	matcher := matching.NewMatcher(testIndex(), zap.NewNop())
	events := []domain.TrafficEvent{
		{ID: "a", RoadName: "A", Locality: "B"},
		{ID: "b", Coordinates: []domain.RawCoordinate{coord(-5, 5), coord(5, 5)}},
	}

	result := matcher.FindAffectedRoutes(context.Background(), events, 1, geocoder)
	assert.Len(t, result, 1)
	assert.Contains(t, result, "b")
}

type countingPreFilter struct {
	calls int
}

func (f *countingPreFilter) Candidates(index *routeindex.Index, geometry []domain.Location, tol float64) []int {
	f.calls++
	return matching.FullScan{}.Candidates(index, geometry, tol)
}
