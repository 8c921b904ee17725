package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/traffic-route-matcher/internal/pkg/errors"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"app error", apperrors.ErrCycleInProgress, "CYCLE_IN_PROGRESS", fiber.StatusConflict},
		{"wrapped app error", fmt.Errorf("run: %w", apperrors.ErrFeedUnavailable), "TRAFFIC_FEED_UNAVAILABLE", fiber.StatusBadGateway},
		{"fiber not found", fiber.ErrNotFound, "NOT_FOUND", fiber.StatusNotFound},
		{"fiber client error", fiber.ErrRequestEntityTooLarge, "HTTP_ERROR", fiber.StatusRequestEntityTooLarge},
		{"fiber server error", fiber.ErrServiceUnavailable, "INTERNAL_SERVER_ERROR", fiber.StatusInternalServerError},
		{"plain error", errors.New("pq: connection refused"), "INTERNAL_SERVER_ERROR", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}
}

func TestSendError_HidesInternalMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SendError(c, errors.New("pq: password authentication failed"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Error.Message)
}
