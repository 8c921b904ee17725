package repository

import (
	"context"
	"time"

	"github.com/traffic-route-matcher/internal/domain"
)

// TrafficEventRepository - хранилище событий
type TrafficEventRepository interface {
	// UpsertEvents атомарно сохраняет события, обновляя существующие по ID.
	// Возвращает количество записанных строк.
	UpsertEvents(ctx context.Context, events []domain.AnnotatedEvent) (int, error)

	// ResolveMissing отмечает решёнными ранее нерешённые события,
	// которых больше нет в текущем фиде
	ResolveMissing(ctx context.Context, currentIDs []string, resolvedAt time.Time) (int64, error)
}
