package usecase_test

import (
	"go.uber.org/zap"

	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/matching"
	"github.com/traffic-route-matcher/internal/routeindex"
)

// loc строит точку из локальных единиц (1 единица = 1e-5 градуса)
func loc(x, y float64) domain.Location {
	return domain.Location{Lat: y * 1e-5, Lng: x * 1e-5}
}

func coord(x, y float64) domain.RawCoordinate {
	return domain.RawCoordinate{x * 1e-5, y * 1e-5}
}

func testMatcher() *matching.Matcher {
	idx := routeindex.New([]domain.RouteDirection{
		{RouteID: "600-4289", Direction: "Caloundra station", Path: []domain.Location{loc(0, 0), loc(0, 10)}},
		{RouteID: "615", Direction: "Kawana", Path: []domain.Location{loc(20, 0), loc(20, 10)}},
	})
	return matching.NewMatcher(idx, zap.NewNop())
}

func feedEvents() []domain.TrafficEvent {
	return []domain.TrafficEvent{
		{ID: "1", RoadName: "Nicklin Way", Coordinates: []domain.RawCoordinate{coord(-5, 5), coord(5, 5)}},
		{ID: "2", RoadName: "Bruce Highway", Coordinates: []domain.RawCoordinate{coord(50, 50), coord(60, 60)}},
	}
}
