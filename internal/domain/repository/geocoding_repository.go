package repository

import (
	"context"

	"github.com/traffic-route-matcher/internal/domain"
)

// GeocodingRepository определяет прямое геокодирование названия дороги
type GeocodingRepository interface {
	// Geocode возвращает наиболее вероятную точку для дороги в населённом пункте.
	// Отсутствие результата - domain.ErrGeocodeNoResult.
	Geocode(ctx context.Context, roadName, locality, description string) (domain.Location, error)
}
