package dto

import (
	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/routeindex"
)

// MatchRequest - события для сопоставления с маршрутами
type MatchRequest struct {
	Events          []domain.TrafficEvent `json:"events" validate:"required,min=1,max=1000,dive"`
	ToleranceMeters float64               `json:"tolerance_meters" validate:"omitempty,gt=0,max=100"`
	Geocode         bool                  `json:"geocode"`
}

// MatchResponse - результат сопоставления и аннотированные события
type MatchResponse struct {
	ToleranceMeters float64                 `json:"tolerance_meters"`
	Matched         int                     `json:"matched"`
	Result          domain.MatchResult      `json:"result"`
	Events          []domain.AnnotatedEvent `json:"events"`
}

// RouteDirectionSummary - направление маршрута с путём в encoded polyline
type RouteDirectionSummary struct {
	RouteID   string `json:"route_id"`
	Direction string `json:"direction"`
	Points    int    `json:"points"`
	Segments  int    `json:"segments"`
	Polyline  string `json:"polyline"`
}

// RoutesResponse - содержимое индекса маршрутов
type RoutesResponse struct {
	Stats      routeindex.Stats        `json:"stats"`
	Directions []RouteDirectionSummary `json:"directions"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status          string `json:"status"`
	MatchingEnabled bool   `json:"matching_enabled"`
	Directions      int    `json:"directions"`
}
