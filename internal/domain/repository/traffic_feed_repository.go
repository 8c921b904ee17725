package repository

import (
	"context"

	"github.com/traffic-route-matcher/internal/domain"
)

// TrafficFeedRepository - источник текущих событий дорожного движения
type TrafficFeedRepository interface {
	// FetchEvents возвращает нормализованные события, отфильтрованные по регионам
	FetchEvents(ctx context.Context) ([]domain.TrafficEvent, error)
}
