package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"github.com/traffic-route-matcher/internal/matching"
	"go.uber.org/zap"
)

// ErrCycleInProgress возвращается, если предыдущий цикл ещё не завершён
var ErrCycleInProgress = errors.New("monitoring cycle already in progress")

// MonitoringUseCase выполняет цикл: получение событий, сопоставление с маршрутами,
// сохранение и публикация аннотированных событий
type MonitoringUseCase struct {
	feedRepo   repository.TrafficFeedRepository
	eventRepo  repository.TrafficEventRepository
	streamRepo repository.StreamRepository
	geocoder   repository.GeocodingRepository
	matcher    *matching.Matcher
	tolerance  float64
	now        func() time.Time
	running    sync.Mutex
	logger     *zap.Logger
}

// NewMonitoringUseCase создает новый экземпляр MonitoringUseCase.
// matcher == nil отключает сопоставление: события сохраняются без аннотаций.
// geocoder и streamRepo необязательны.
func NewMonitoringUseCase(
	feedRepo repository.TrafficFeedRepository,
	eventRepo repository.TrafficEventRepository,
	streamRepo repository.StreamRepository,
	geocoder repository.GeocodingRepository,
	matcher *matching.Matcher,
	toleranceMeters float64,
	logger *zap.Logger,
) *MonitoringUseCase {
	if toleranceMeters <= 0 {
		toleranceMeters = matching.DefaultToleranceMeters
	}
	return &MonitoringUseCase{
		feedRepo:   feedRepo,
		eventRepo:  eventRepo,
		streamRepo: streamRepo,
		geocoder:   geocoder,
		matcher:    matcher,
		tolerance:  toleranceMeters,
		now:        time.Now,
		logger:     logger,
	}
}

// MatchingEnabled сообщает, загружен ли индекс маршрутов
func (uc *MonitoringUseCase) MatchingEnabled() bool {
	return uc.matcher != nil
}

// RunCycle выполняет один цикл. Циклы не пересекаются: параллельный вызов
// получает ErrCycleInProgress. Ошибка сохранения возвращается вместе с отчётом.
func (uc *MonitoringUseCase) RunCycle(ctx context.Context) (*domain.CycleReport, error) {
	if !uc.running.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer uc.running.Unlock()

	report := &domain.CycleReport{
		CycleID:         uuid.New(),
		StartedAt:       uc.now(),
		MatchingEnabled: uc.matcher != nil,
	}
	logger := uc.logger.With(zap.String("cycle_id", report.CycleID.String()))
	defer func() {
		report.Duration = uc.now().Sub(report.StartedAt)
	}()

	logger.Info("Starting traffic monitoring cycle")

	// 1. Получаем события
	events, err := uc.feedRepo.FetchEvents(ctx)
	if err != nil {
		logger.Error("Failed to fetch traffic events", zap.Error(err))
		return report, fmt.Errorf("fetch traffic events: %w", err)
	}
	report.EventsFetched = len(events)

	// 2. Сопоставляем с маршрутами
	var result domain.MatchResult
	if uc.matcher != nil {
		result = uc.matcher.FindAffectedRoutes(ctx, events, uc.tolerance, uc.geocoder)
		report.EventsMatched = len(result)
	} else {
		logger.Warn("Route index unavailable, events are stored without annotations")
	}
	annotated := matching.Annotate(events, result)

	// 3. Сохраняем; resolved проставляется только после успешного upsert
	persisted, persistErr := uc.eventRepo.UpsertEvents(ctx, annotated)
	report.EventsPersisted = persisted
	if persistErr != nil {
		logger.Error("Failed to persist traffic events, skipping resolve", zap.Error(persistErr))
	} else {
		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		resolved, err := uc.eventRepo.ResolveMissing(ctx, ids, uc.now())
		if err != nil {
			logger.Error("Failed to mark resolved traffic events", zap.Error(err))
		}
		report.EventsResolved = resolved
	}

	// 4. Публикуем затронутые маршруты
	report.EventsPublished = uc.publish(ctx, report.CycleID, annotated, logger)

	logger.Info("Traffic monitoring cycle completed",
		zap.Int("fetched", report.EventsFetched),
		zap.Int("matched", report.EventsMatched),
		zap.Int("persisted", report.EventsPersisted),
		zap.Int64("resolved", report.EventsResolved),
		zap.Int("published", report.EventsPublished))

	if persistErr != nil {
		return report, fmt.Errorf("persist traffic events: %w", persistErr)
	}
	return report, nil
}

func (uc *MonitoringUseCase) publish(
	ctx context.Context,
	cycleID uuid.UUID,
	events []domain.AnnotatedEvent,
	logger *zap.Logger,
) int {
	if uc.streamRepo == nil {
		return 0
	}

	published := 0
	for _, e := range events {
		if !e.IsAnnotated() {
			continue
		}
		msg := domain.NewTrafficAnnotatedEvent(cycleID, e, uc.now())
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamTrafficAnnotated, msg); err != nil {
			logger.Warn("Failed to publish annotated event",
				zap.String("event_id", e.ID),
				zap.Error(err))
			continue
		}
		published++
	}
	return published
}
