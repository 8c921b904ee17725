package locationiq

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"go.uber.org/zap"
)

type cachedGeocoder struct {
	next   repository.GeocodingRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedGeocoder оборачивает геокодер кешем. Ошибки кеша только логируются,
// отсутствие результата не кешируется.
func NewCachedGeocoder(
	next repository.GeocodingRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.GeocodingRepository {
	return &cachedGeocoder{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// CacheKey строит ключ по нормализованному запросу
func CacheKey(roadName, locality, description string) string {
	q := strings.ToLower(Query(roadName, locality, description))
	sum := sha1.Sum([]byte(q))
	return hex.EncodeToString(sum[:])
}

func (g *cachedGeocoder) Geocode(ctx context.Context, roadName, locality, description string) (domain.Location, error) {
	key := CacheKey(roadName, locality, description)

	if data, err := g.cache.Get(ctx, key); err != nil {
		g.logger.Warn("Geocode cache read failed", zap.Error(err))
	} else if data != nil {
		var loc domain.Location
		if err := json.Unmarshal(data, &loc); err == nil {
			return loc, nil
		}
		g.logger.Warn("Corrupted geocode cache entry", zap.String("key", key))
	}

	loc, err := g.next.Geocode(ctx, roadName, locality, description)
	if err != nil {
		return domain.Location{}, err
	}

	data, err := json.Marshal(loc)
	if err == nil {
		if err := g.cache.Set(ctx, key, data, g.ttl); err != nil {
			g.logger.Warn("Geocode cache write failed", zap.Error(err))
		}
	}

	return loc, nil
}
