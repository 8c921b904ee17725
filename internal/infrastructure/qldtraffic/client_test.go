package qldtraffic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traffic-route-matcher/internal/config"
	"github.com/traffic-route-matcher/internal/domain"
)

const feedFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {
        "type": "MultiLineString",
        "coordinates": [
          [[153.1, -26.7], [153.2, -26.8]],
          [[153.3, -26.9]]
        ]
      },
      "properties": {
        "id": 1001,
        "event_type": "Roadworks",
        "event_subtype": "Resurfacing",
        "impact": {
          "direction": "Both directions",
          "towards": "Caloundra",
          "impact_type": "Lanes closed",
          "impact_subtype": "Left lane"
        },
        "duration": {"start": "2025-03-01T00:30:00Z"},
        "event_priority": "Medium",
        "description": "Lane closure",
        "last_updated": "2025-03-01T10:15:00+10:00",
        "road_summary": {
          "road_name": "Nicklin Way",
          "locality": "Warana",
          "postcode": "4575",
          "local_government_area": "Sunshine Coast Regional",
          "district": "North Coast"
        }
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[153.4, -28.0], [153.41, -28.01]]},
      "properties": {
        "id": "GC-7",
        "event_type": "Crash",
        "impact": {"direction": "Northbound"},
        "duration": {"start": "not a date"},
        "road_summary": {"road_name": "Gold Coast Highway", "locality": "Burleigh Heads", "local_government_area": "Gold Coast City"}
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [152.9, -26.4]},
      "properties": {
        "id": "N-1",
        "event_type": "Hazard",
        "road_summary": {"road_name": "Eumundi Noosa Road", "locality": "Doonan", "local_government_area": "Noosa Shire"}
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[153.0, -27.4], [153.01, -27.41]]},
      "properties": {
        "id": "BNE-1",
        "event_type": "Congestion",
        "road_summary": {"road_name": "Ann Street", "locality": "Brisbane City", "local_government_area": "Brisbane City"}
      }
    }
  ]
}`

func testConfig(url string) *config.TrafficConfig {
	return &config.TrafficConfig{
		APIURL:         url,
		APIKey:         "test_key",
		Regions:        []string{"Gold Coast City", "Sunshine Coast Regional", "Noosa Shire"},
		Timezone:       "Australia/Brisbane",
		RequestTimeout: 5 * time.Second,
	}
}

func TestClient_FetchEvents(t *testing.T) {
	logger := zap.NewNop()

	t.Run("normalizes and filters features", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/events", r.URL.Path)
			assert.Equal(t, "test_key", r.URL.Query().Get("apikey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(feedFixture))
		}))
		defer server.Close()

		c, err := NewClient(testConfig(server.URL), logger)
		require.NoError(t, err)

		events, err := c.FetchEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 3)

		first := events[0]
		assert.Equal(t, "1001", first.ID)
		assert.Equal(t, "Roadworks", first.EventType)
		assert.Equal(t, "Resurfacing", first.EventSubtype)
		assert.Equal(t, "Both directions", first.Direction)
		assert.Equal(t, "Caloundra", first.Towards)
		assert.Equal(t, "Lanes closed", first.ImpactType)
		assert.Equal(t, "Left lane", first.ImpactSubtype)
		assert.Equal(t, "2025-03-01 10:30:00", first.DurationStart)
		assert.Equal(t, "2025-03-01 10:15:00", first.LastUpdated)
		assert.Equal(t, "Nicklin Way", first.RoadName)
		assert.Equal(t, "4575", first.Postcode)
		assert.Equal(t, "North Coast", first.District)
		assert.Equal(t, []domain.RawCoordinate{
			{153.1, -26.7}, {153.2, -26.8}, {153.3, -26.9},
		}, first.Coordinates)

		second := events[1]
		assert.Equal(t, "GC-7", second.ID)
		assert.Equal(t, "Northbound", second.Direction)
		assert.Empty(t, second.Towards)
		assert.Empty(t, second.DurationStart)
		assert.Len(t, second.Coordinates, 2)

		third := events[2]
		assert.Equal(t, "N-1", third.ID)
		assert.Empty(t, third.Coordinates)
		assert.Equal(t, "Doonan", third.Locality)
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid key"}`))
		}))
		defer server.Close()

		c, err := NewClient(testConfig(server.URL), logger)
		require.NoError(t, err)

		events, err := c.FetchEvents(context.Background())
		assert.Error(t, err)
		assert.Nil(t, events)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("invalid body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		c, err := NewClient(testConfig(server.URL), logger)
		require.NoError(t, err)

		_, err = c.FetchEvents(context.Background())
		assert.Error(t, err)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		cfg := testConfig("http://localhost")
		cfg.Timezone = "Mars/Olympus"

		_, err := NewClient(cfg, logger)
		assert.Error(t, err)
	})
}
