// Package qldtraffic получает события дорожного движения из QLDTraffic v2
// и приводит их к плоским записям domain.TrafficEvent.
package qldtraffic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/traffic-route-matcher/internal/config"
	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"go.uber.org/zap"
)

// maxBodySize ограничивает размер ответа фида
const maxBodySize = 64 << 20

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	regions    map[string]struct{}
	location   *time.Location
	logger     *zap.Logger
}

// NewClient создает клиент фида QLDTraffic
func NewClient(cfg *config.TrafficConfig, logger *zap.Logger) (repository.TrafficFeedRepository, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}

	regions := make(map[string]struct{}, len(cfg.Regions))
	for _, r := range cfg.Regions {
		regions[r] = struct{}{}
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:  cfg.APIURL,
		apiKey:   cfg.APIKey,
		regions:  regions,
		location: loc,
		logger:   logger,
	}, nil
}

// FetchEvents запрашивает текущие события и возвращает только события из настроенных регионов
func (c *client) FetchEvents(ctx context.Context) ([]domain.TrafficEvent, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	endpoint := fmt.Sprintf("%s/v2/events?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling QLDTraffic events API", zap.String("base_url", c.baseURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("QLDTraffic API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(string(body), 512)))
		return nil, fmt.Errorf("qldtraffic API error: status %d", resp.StatusCode)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.logger.Error("Failed to decode feature collection", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	events := make([]domain.TrafficEvent, 0, len(fc.Features))
	for _, f := range fc.Features {
		event := c.normalize(f)
		if event.ID == "" {
			c.logger.Warn("Skipping feature without id")
			continue
		}
		if _, ok := c.regions[event.LocalGovernmentArea]; !ok {
			continue
		}
		events = append(events, event)
	}

	c.logger.Info("Active traffic events on network",
		zap.Int("total", len(fc.Features)),
		zap.Int("in_regions", len(events)))

	return events, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
