package qldtraffic

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/traffic-route-matcher/internal/domain"
)

var feedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// normalize превращает GeoJSON feature в плоскую запись события
func (c *client) normalize(f *geojson.Feature) domain.TrafficEvent {
	props := map[string]interface{}(f.Properties)
	impact := nested(props, "impact")
	duration := nested(props, "duration")
	road := nested(props, "road_summary")

	return domain.TrafficEvent{
		ID:                  str(props, "id"),
		EventType:           str(props, "event_type"),
		EventSubtype:        str(props, "event_subtype"),
		EventDueTo:          str(props, "event_due_to"),
		Direction:           str(impact, "direction"),
		Towards:             str(impact, "towards"),
		ImpactType:          str(impact, "impact_type"),
		ImpactSubtype:       str(impact, "impact_subtype"),
		DurationStart:       c.localTime(str(duration, "start")),
		EventPriority:       str(props, "event_priority"),
		Description:         str(props, "description"),
		Advice:              str(props, "advice"),
		LastUpdated:         c.localTime(str(props, "last_updated")),
		Information:         str(props, "information"),
		RoadName:            str(road, "road_name"),
		Locality:            str(road, "locality"),
		Postcode:            str(road, "postcode"),
		LocalGovernmentArea: str(road, "local_government_area"),
		District:            str(road, "district"),
		Coordinates:         flatten(f.Geometry),
	}
}

// flatten собирает точки LineString/MultiLineString в один список [lng, lat].
// Для остальных типов геометрии координаты пустые.
func flatten(g orb.Geometry) []domain.RawCoordinate {
	var lines []orb.LineString
	switch geom := g.(type) {
	case orb.LineString:
		lines = []orb.LineString{geom}
	case orb.MultiLineString:
		lines = geom
	default:
		return []domain.RawCoordinate{}
	}

	coords := make([]domain.RawCoordinate, 0)
	for _, ls := range lines {
		for _, p := range ls {
			coords = append(coords, domain.RawCoordinate{p.Lon(), p.Lat()})
		}
	}
	return coords
}

// localTime переводит время фида в настроенную зону; неразборное время становится пустым
func (c *client) localTime(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range feedTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.In(c.location).Format(domain.TimestampLayout)
		}
	}
	return ""
}

func nested(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func str(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
