package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamTrafficAnnotated = "stream:traffic:annotated"
)

// TrafficAnnotatedEvent - сообщение о событии, затрагивающем маршруты
type TrafficAnnotatedEvent struct {
	CycleID     uuid.UUID       `json:"cycle_id"`
	EventID     string          `json:"event_id"`
	RoadName    string          `json:"road_name"`
	Locality    string          `json:"locality"`
	Description string          `json:"description"`
	Route       AnnotationValue `json:"route"`
	Headsign    AnnotationValue `json:"headsign"`
	PublishedAt time.Time       `json:"published_at"`
}

// NewTrafficAnnotatedEvent собирает сообщение из аннотированного события
func NewTrafficAnnotatedEvent(cycleID uuid.UUID, event AnnotatedEvent, publishedAt time.Time) TrafficAnnotatedEvent {
	return TrafficAnnotatedEvent{
		CycleID:     cycleID,
		EventID:     event.ID,
		RoadName:    event.RoadName,
		Locality:    event.Locality,
		Description: event.Description,
		Route:       event.Route,
		Headsign:    event.Headsign,
		PublishedAt: publishedAt,
	}
}

// CycleReport - итог одного цикла мониторинга
type CycleReport struct {
	CycleID         uuid.UUID     `json:"cycle_id"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
	EventsFetched   int           `json:"events_fetched"`
	EventsMatched   int           `json:"events_matched"`
	EventsPersisted int           `json:"events_persisted"`
	EventsResolved  int64         `json:"events_resolved"`
	EventsPublished int           `json:"events_published"`
	MatchingEnabled bool          `json:"matching_enabled"`
}
