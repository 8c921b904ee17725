// Package matching сопоставляет события дорожного движения с направлениями
// автобусных маршрутов и собирает из результата аннотации route/headsign.
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"github.com/traffic-route-matcher/internal/pkg/geo"
	"github.com/traffic-route-matcher/internal/routeindex"
	"go.uber.org/zap"
)

// DefaultToleranceMeters - допуск по умолчанию: точка должна лежать на пути, а не рядом с ним
const DefaultToleranceMeters = 1.0

// Matcher сканирует индекс маршрутов для каждого события.
// Индекс только читается, один Matcher можно использовать из нескольких циклов.
type Matcher struct {
	index     *routeindex.Index
	prefilter PreFilter
	logger    *zap.Logger
}

// Option настраивает Matcher
type Option func(*Matcher)

// WithPreFilter подключает предварительный отбор кандидатов
func WithPreFilter(p PreFilter) Option {
	return func(m *Matcher) {
		m.prefilter = p
	}
}

// NewMatcher создает новый Matcher поверх загруженного индекса
func NewMatcher(index *routeindex.Index, logger *zap.Logger, opts ...Option) *Matcher {
	m := &Matcher{
		index:     index,
		prefilter: FullScan{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Index возвращает индекс, с которым работает Matcher
func (m *Matcher) Index() *routeindex.Index {
	return m.index
}

// eventGeometry - геометрия события, выбранная для сопоставления
type eventGeometry struct {
	points   []domain.Location
	kind     domain.GeometryType
	location string
}

// FindAffectedRoutes сопоставляет события с маршрутами.
//
// Событие с двумя и более разборными координатами проверяется как ломаная,
// иначе геокодируется в точку (если передан geocoder и есть road_name и locality).
// События без геометрии и без совпадений в результат не попадают. Ошибка
// в одном событии логируется и не прерывает обработку остальных.
func (m *Matcher) FindAffectedRoutes(
	ctx context.Context,
	events []domain.TrafficEvent,
	toleranceMeters float64,
	geocoder repository.GeocodingRepository,
) domain.MatchResult {
	result := make(domain.MatchResult)
	if len(events) == 0 {
		m.logger.Info("No traffic events to process")
		return result
	}

	m.logger.Info("Matching traffic events against route directions",
		zap.Int("events", len(events)),
		zap.Int("directions", m.index.Len()),
		zap.Float64("tolerance_m", toleranceMeters))

	for _, event := range events {
		match, ok, err := m.matchEvent(ctx, event, toleranceMeters, geocoder)
		if err != nil {
			m.logger.Error("Failed to match event, skipping",
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}
		if !ok {
			continue
		}

		m.logger.Info("Event intersects route directions",
			zap.String("event_id", event.ID),
			zap.Int("directions", len(match.AffectedDirections)))
		result[event.ID] = match
	}

	return result
}

// matchEvent обрабатывает одно событие; паника перехватывается и превращается в ошибку
func (m *Matcher) matchEvent(
	ctx context.Context,
	event domain.TrafficEvent,
	toleranceMeters float64,
	geocoder repository.GeocodingRepository,
) (match domain.EventMatch, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while matching event: %v", r)
			ok = false
		}
	}()

	geometry, resolved := m.resolveGeometry(ctx, event, geocoder)
	if !resolved {
		m.logger.Debug("Skipping event without usable location", zap.String("event_id", event.ID))
		return domain.EventMatch{}, false, nil
	}

	affected := m.scan(geometry, toleranceMeters)
	if len(affected) == 0 {
		m.logger.Debug("Event does not intersect any route direction", zap.String("event_id", event.ID))
		return domain.EventMatch{}, false, nil
	}

	return domain.EventMatch{
		Location:           geometry.location,
		Description:        event.Description,
		EventType:          geometry.kind,
		AffectedDirections: affected,
	}, true, nil
}

func (m *Matcher) resolveGeometry(
	ctx context.Context,
	event domain.TrafficEvent,
	geocoder repository.GeocodingRepository,
) (eventGeometry, bool) {
	if len(event.Coordinates) > 0 {
		m.logger.Debug("Event has coordinates, checking polyline intersection",
			zap.String("event_id", event.ID),
			zap.Int("coordinates", len(event.Coordinates)))

		points := make([]domain.Location, 0, len(event.Coordinates))
		for _, c := range event.Coordinates {
			lng, lat, err := c.LngLat()
			if err != nil {
				m.logger.Debug("Skipping invalid coordinate",
					zap.String("event_id", event.ID),
					zap.Any("coordinate", c),
					zap.Error(err))
				continue
			}
			points = append(points, domain.Location{Lat: lat, Lng: lng})
		}

		if len(points) >= 2 {
			return eventGeometry{
				points:   points,
				kind:     domain.GeometryPolyline,
				location: fmt.Sprintf("polyline %d points", len(points)),
			}, true
		}
	}

	roadName := strings.TrimSpace(event.RoadName)
	locality := strings.TrimSpace(event.Locality)
	if geocoder == nil || roadName == "" || locality == "" {
		m.logger.Warn("Event has no usable coordinates and cannot be geocoded",
			zap.String("event_id", event.ID),
			zap.Bool("geocoder", geocoder != nil),
			zap.String("road_name", roadName),
			zap.String("locality", locality))
		return eventGeometry{}, false
	}

	m.logger.Debug("Geocoding event",
		zap.String("event_id", event.ID),
		zap.String("road_name", roadName),
		zap.String("locality", locality))

	point, err := geocoder.Geocode(ctx, roadName, locality, event.Description)
	if err != nil {
		m.logger.Warn("Geocoding failed",
			zap.String("event_id", event.ID),
			zap.String("road_name", roadName),
			zap.String("locality", locality),
			zap.Error(err))
		return eventGeometry{}, false
	}

	return eventGeometry{
		points:   []domain.Location{point},
		kind:     domain.GeometryPoint,
		location: fmt.Sprintf("(%.6f, %.6f)", point.Lat, point.Lng),
	}, true
}

// scan проверяет кандидатов в порядке индекса
func (m *Matcher) scan(g eventGeometry, toleranceMeters float64) []domain.AffectedDirection {
	var affected []domain.AffectedDirection

	for _, pos := range m.prefilter.Candidates(m.index, g.points, toleranceMeters) {
		direction := m.index.Direction(pos)

		var (
			found    bool
			segments []int
			kind     domain.IntersectionType
		)

		switch g.kind {
		case domain.GeometryPolyline:
			found, segments = geo.PolylinesIntersect(g.points, direction.Path)
			kind = domain.IntersectionPolyline
		default:
			var segment int
			found, segment = geo.PointOnPolyline(g.points[0], direction.Path, toleranceMeters)
			if found {
				segments = []int{segment}
			}
			kind = domain.IntersectionPointOnRoute
		}

		if !found {
			continue
		}

		m.logger.Debug("Event geometry matches route direction",
			zap.String("route_id", direction.RouteID),
			zap.String("direction", direction.Direction),
			zap.String("intersection_type", string(kind)),
			zap.Ints("segments", segments))

		affected = append(affected, domain.AffectedDirection{
			RouteID:          direction.RouteID,
			Direction:        direction.Direction,
			IntersectionType: kind,
			SegmentIndices:   segments,
			TotalSegments:    direction.TotalSegments(),
		})
	}

	return affected
}
