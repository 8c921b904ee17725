package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawCoordinate - пара [lng, lat] из фида в том виде, в котором она пришла.
// Элементы могут оказаться строками или мусором, поэтому разбор выполняется поштучно.
type RawCoordinate []interface{}

// LngLat разбирает пару в числа
func (c RawCoordinate) LngLat() (float64, float64, error) {
	if len(c) < 2 {
		return 0, 0, fmt.Errorf("coordinate has %d elements, want 2", len(c))
	}
	lng, err := toFloat(c[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lng: %w", err)
	}
	lat, err := toFloat(c[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lat: %w", err)
	}
	return lng, lat, nil
}

func toFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

// TimestampLayout - формат времени в записях событий (локальное время региона)
const TimestampLayout = "2006-01-02 15:04:05"

// TrafficEvent - нормализованное событие дорожного движения
type TrafficEvent struct {
	ID                  string          `json:"ID" validate:"required"`
	EventType           string          `json:"event_type"`
	EventSubtype        string          `json:"event_subtype"`
	EventDueTo          string          `json:"event_due_to"`
	Direction           string          `json:"direction"`
	Towards             string          `json:"towards"`
	ImpactType          string          `json:"impact_type"`
	ImpactSubtype       string          `json:"impact_subtype"`
	DurationStart       string          `json:"duration_start"`
	EventPriority       string          `json:"event_priority"`
	Description         string          `json:"description"`
	Advice              string          `json:"advice"`
	LastUpdated         string          `json:"last_updated"`
	Information         string          `json:"information"`
	RoadName            string          `json:"road_name"`
	Locality            string          `json:"locality"`
	Postcode            string          `json:"postcode"`
	LocalGovernmentArea string          `json:"local_government_area"`
	District            string          `json:"district"`
	Coordinates         []RawCoordinate `json:"coordinates"`
}

// IntersectionType - способ, которым событие совпало с направлением маршрута
type IntersectionType string

const (
	IntersectionPolyline     IntersectionType = "polyline_intersection"
	IntersectionPointOnRoute IntersectionType = "point_on_route"
)

// GeometryType - вид геометрии события, использованной при сопоставлении
type GeometryType string

const (
	GeometryPolyline GeometryType = "polyline"
	GeometryPoint    GeometryType = "point"
)

// AffectedDirection - направление маршрута, через которое проходит событие.
// SegmentIndices - индексы отрезков геометрии события (polyline) или отрезка маршрута (point).
type AffectedDirection struct {
	RouteID          string           `json:"route_id"`
	Direction        string           `json:"direction"`
	IntersectionType IntersectionType `json:"intersection_type"`
	SegmentIndices   []int            `json:"segment_indices"`
	TotalSegments    int              `json:"total_segments"`
}

// EventMatch - результат сопоставления одного события
type EventMatch struct {
	Location           string              `json:"location"`
	Description        string              `json:"description"`
	EventType          GeometryType        `json:"event_type"`
	AffectedDirections []AffectedDirection `json:"affected_directions"`
}

// MatchResult - event_id -> результат сопоставления. Содержит только события,
// затронувшие хотя бы одно направление.
type MatchResult map[string]EventMatch
