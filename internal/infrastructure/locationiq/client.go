// Package locationiq реализует прямое геокодирование дорог через LocationIQ.
package locationiq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/traffic-route-matcher/internal/config"
	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"github.com/traffic-route-matcher/internal/pkg/geo"
	"go.uber.org/zap"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	countryCode string
	logger      *zap.Logger
}

// searchResult - элемент ответа /v1/search.php; координаты приходят строками
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewClient создает новый клиент для LocationIQ API
func NewClient(cfg *config.GeocodeConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		countryCode: cfg.CountryCode,
		logger:      logger,
	}
}

// Query собирает строку поиска "road, locality, description" без пустых частей
func Query(roadName, locality, description string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{roadName, locality, description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Geocode возвращает первую найденную точку для дороги
func (c *client) Geocode(ctx context.Context, roadName, locality, description string) (domain.Location, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", Query(roadName, locality, description))
	params.Set("format", "json")
	if c.countryCode != "" {
		params.Set("countrycodes", c.countryCode)
	}
	endpoint := fmt.Sprintf("%s/v1/search.php?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling LocationIQ search API",
		zap.String("road_name", roadName),
		zap.String("locality", locality))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Location{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return domain.Location{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Location{}, fmt.Errorf("failed to read response: %w", err)
	}

	// На пустой результат LocationIQ отвечает 404 с {"error": "Unable to geocode"}
	if resp.StatusCode == http.StatusNotFound {
		return domain.Location{}, domain.ErrGeocodeNoResult
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("LocationIQ API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.Location{}, fmt.Errorf("locationiq API error: status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		// Ошибка приходит объектом вместо списка
		return domain.Location{}, fmt.Errorf("%w: %s", domain.ErrGeocodeNoResult, strings.TrimSpace(string(body)))
	}
	if len(results) == 0 {
		return domain.Location{}, domain.ErrGeocodeNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("invalid lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("invalid lon %q: %w", results[0].Lon, err)
	}

	if !geo.ValidateCoordinates(lat, lng) {
		c.logger.Warn("LocationIQ returned coordinates out of range",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng))
		return domain.Location{}, fmt.Errorf("%w: coordinates out of range (%v, %v)", domain.ErrGeocodeNoResult, lat, lng)
	}

	c.logger.Debug("Geocoded road",
		zap.String("display_name", results[0].DisplayName),
		zap.Float64("lat", lat),
		zap.Float64("lng", lng))

	return domain.Location{Lat: lat, Lng: lng}, nil
}
