package usecase

import (
	"context"

	"github.com/traffic-route-matcher/internal/domain/repository"
	"github.com/traffic-route-matcher/internal/matching"
	"github.com/traffic-route-matcher/internal/pkg/errors"
	"github.com/traffic-route-matcher/internal/routeindex"
	"github.com/traffic-route-matcher/internal/usecase/dto"
	"go.uber.org/zap"
)

// MatchUseCase сопоставляет события, переданные через API, и отдаёт сводку по маршрутам
type MatchUseCase struct {
	matcher   *matching.Matcher
	geocoder  repository.GeocodingRepository
	tolerance float64
	logger    *zap.Logger
}

// NewMatchUseCase создает новый экземпляр MatchUseCase; matcher может быть nil
func NewMatchUseCase(
	matcher *matching.Matcher,
	geocoder repository.GeocodingRepository,
	defaultTolerance float64,
	logger *zap.Logger,
) *MatchUseCase {
	if defaultTolerance <= 0 {
		defaultTolerance = matching.DefaultToleranceMeters
	}
	return &MatchUseCase{
		matcher:   matcher,
		geocoder:  geocoder,
		tolerance: defaultTolerance,
		logger:    logger,
	}
}

// Match сопоставляет события запроса с индексом
func (uc *MatchUseCase) Match(ctx context.Context, req dto.MatchRequest) (*dto.MatchResponse, error) {
	if uc.matcher == nil {
		return nil, errors.ErrRouteIndexUnavailable
	}

	tolerance := req.ToleranceMeters
	if tolerance == 0 {
		tolerance = uc.tolerance
	}

	var geocoder repository.GeocodingRepository
	if req.Geocode {
		geocoder = uc.geocoder
	}

	result := uc.matcher.FindAffectedRoutes(ctx, req.Events, tolerance, geocoder)

	uc.logger.Debug("Matched request events",
		zap.Int("events", len(req.Events)),
		zap.Int("matched", len(result)),
		zap.Bool("geocode", geocoder != nil))

	return &dto.MatchResponse{
		ToleranceMeters: tolerance,
		Matched:         len(result),
		Result:          result,
		Events:          matching.Annotate(req.Events, result),
	}, nil
}

// Routes возвращает загруженные направления и статистику индекса
func (uc *MatchUseCase) Routes() (*routeindex.Index, error) {
	if uc.matcher == nil {
		return nil, errors.ErrRouteIndexUnavailable
	}
	return uc.matcher.Index(), nil
}
