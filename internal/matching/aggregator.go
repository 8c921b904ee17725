package matching

import (
	"strings"

	"github.com/traffic-route-matcher/internal/domain"
)

// routeIDSeparator отделяет опубликованный номер маршрута от варианта ("600-4289")
const routeIDSeparator = "-"

// CleanRouteID возвращает опубликованный номер маршрута: всё до первого разделителя
func CleanRouteID(raw string) string {
	cleaned, _, _ := strings.Cut(raw, routeIDSeparator)
	return cleaned
}

// Annotate возвращает новые записи событий с заполненными route/headsign.
// События без совпадений остаются в выдаче без аннотации; входной срез не изменяется.
func Annotate(events []domain.TrafficEvent, result domain.MatchResult) []domain.AnnotatedEvent {
	annotated := make([]domain.AnnotatedEvent, len(events))
	for i, event := range events {
		annotated[i] = domain.AnnotatedEvent{TrafficEvent: event}

		match, ok := result[event.ID]
		if !ok {
			continue
		}
		annotated[i].Route, annotated[i].Headsign = Annotation(match)
	}
	return annotated
}

type routeDirectionKey struct {
	routeID   string
	direction string
}

// Annotation собирает уникальные номера маршрутов и направления события.
//
// Если два разных исходных route_id сводятся к одному номеру, сохраняется
// направление первого из них, второе отбрасывается.
func Annotation(match domain.EventMatch) (route, headsign domain.AnnotationValue) {
	seenPairs := make(map[routeDirectionKey]struct{})
	seenRoutes := make(map[string]struct{})

	for _, d := range match.AffectedDirections {
		key := routeDirectionKey{routeID: d.RouteID, direction: d.Direction}
		if _, dup := seenPairs[key]; dup {
			continue
		}
		seenPairs[key] = struct{}{}

		cleaned := CleanRouteID(d.RouteID)
		if _, dup := seenRoutes[cleaned]; dup {
			continue
		}
		seenRoutes[cleaned] = struct{}{}

		route = append(route, cleaned)
		headsign = append(headsign, d.Direction)
	}

	return route, headsign
}
