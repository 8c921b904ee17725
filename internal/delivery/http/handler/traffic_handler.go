package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/traffic-route-matcher/internal/domain"
	apperrors "github.com/traffic-route-matcher/internal/pkg/errors"
	"github.com/traffic-route-matcher/internal/pkg/utils"
	"github.com/traffic-route-matcher/internal/usecase"
	"go.uber.org/zap"
)

// CycleRunner запускает цикл мониторинга
type CycleRunner interface {
	RunCycle(ctx context.Context) (*domain.CycleReport, error)
}

// TrafficHandler обрабатывает ручной запуск цикла мониторинга
type TrafficHandler struct {
	runner CycleRunner
	logger *zap.Logger
}

// NewTrafficHandler создает новый экземпляр TrafficHandler
func NewTrafficHandler(runner CycleRunner, logger *zap.Logger) *TrafficHandler {
	return &TrafficHandler{
		runner: runner,
		logger: logger,
	}
}

// UploadTrafficEvents godoc
// @Summary Run one traffic monitoring cycle
// @Description Загружает текущие события, сопоставляет их с маршрутами и сохраняет
// @Tags Traffic
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.CycleReport}
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/traffic-events/upload [post]
func (h *TrafficHandler) UploadTrafficEvents(c *fiber.Ctx) error {
	h.logger.Info("Handling traffic events upload request")

	report, err := h.runner.RunCycle(c.Context())
	if errors.Is(err, usecase.ErrCycleInProgress) {
		return utils.SendError(c, apperrors.ErrCycleInProgress)
	}
	if err != nil {
		h.logger.Error("Traffic monitoring cycle failed", zap.Error(err))
		details := map[string]interface{}{}
		if report != nil {
			details["cycle_id"] = report.CycleID.String()
		}
		return utils.SendError(c, apperrors.ErrCycleFailed.WithMessage(err.Error()).WithDetails(details))
	}

	return utils.SendSuccess(c, report, &utils.Meta{
		TimeMSec: float64(report.Duration.Microseconds()) / 1000,
	})
}
