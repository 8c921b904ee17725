// Package app собирает компоненты сопоставления, общие для API и воркера.
package app

import (
	"time"

	"github.com/traffic-route-matcher/internal/config"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"github.com/traffic-route-matcher/internal/infrastructure/locationiq"
	"github.com/traffic-route-matcher/internal/matching"
	"github.com/traffic-route-matcher/internal/routeindex"
	"go.uber.org/zap"
)

// PreFilterRTree включает отбор кандидатов по R-дереву
const PreFilterRTree = "rtree"

// NewMatcher загружает индекс маршрутов. Если данные недоступны, возвращает nil:
// сервис продолжает работу без аннотаций.
func NewMatcher(cfg *config.MatchConfig, log *zap.Logger) *matching.Matcher {
	idx, err := routeindex.Load(cfg.RouteDataPath, log)
	if err != nil {
		log.Error("Bus route data unavailable, route matching disabled",
			zap.String("path", cfg.RouteDataPath),
			zap.Error(err))
		return nil
	}

	var opts []matching.Option
	if cfg.PreFilter == PreFilterRTree {
		f := matching.NewBoundsPreFilter(idx)
		log.Info("Bounding box pre-filter enabled", zap.Int("directions", f.Len()))
		opts = append(opts, matching.WithPreFilter(f))
	}

	return matching.NewMatcher(idx, log, opts...)
}

// NewGeocoder создает геокодер LocationIQ; без ключа возвращает nil.
// cache может быть nil, тогда ответы не кешируются.
func NewGeocoder(cfg *config.GeocodeConfig, cache repository.CacheRepository, log *zap.Logger) repository.GeocodingRepository {
	if cfg.APIKey == "" {
		log.Warn("GEOCODE_API_KEY not set, events without coordinates will be skipped")
		return nil
	}

	geocoder := locationiq.NewClient(cfg, log)
	if cache == nil {
		return geocoder
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return locationiq.NewCachedGeocoder(geocoder, cache, ttl, log)
}
