package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/traffic-route-matcher/internal/domain"
	apperrors "github.com/traffic-route-matcher/internal/pkg/errors"
	"github.com/traffic-route-matcher/internal/pkg/utils"
	"github.com/traffic-route-matcher/internal/pkg/validator"
	"github.com/traffic-route-matcher/internal/usecase"
	"github.com/traffic-route-matcher/internal/usecase/dto"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

// RouteHandler отдаёт содержимое индекса маршрутов и сопоставляет события по запросу
type RouteHandler struct {
	matchUC *usecase.MatchUseCase
	logger  *zap.Logger
}

// NewRouteHandler создает новый экземпляр RouteHandler
func NewRouteHandler(matchUC *usecase.MatchUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		matchUC: matchUC,
		logger:  logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *RouteHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "healthy"}
	if idx, err := h.matchUC.Routes(); err == nil {
		resp.MatchingEnabled = true
		resp.Directions = idx.Len()
	} else {
		resp.Status = "degraded"
	}
	return c.JSON(resp)
}

// GetRoutes godoc
// @Summary List loaded bus route directions
// @Description Возвращает направления маршрутов с путём в формате encoded polyline
// @Tags Routes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.RoutesResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/routes [get]
func (h *RouteHandler) GetRoutes(c *fiber.Ctx) error {
	idx, err := h.matchUC.Routes()
	if err != nil {
		return utils.SendError(c, err)
	}

	directions := idx.Directions()
	resp := dto.RoutesResponse{
		Stats:      idx.Stats(),
		Directions: make([]dto.RouteDirectionSummary, len(directions)),
	}
	for i, d := range directions {
		resp.Directions[i] = dto.RouteDirectionSummary{
			RouteID:   d.RouteID,
			Direction: d.Direction,
			Points:    len(d.Path),
			Segments:  d.TotalSegments(),
			Polyline:  EncodePath(d.Path),
		}
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(directions)})
}

// Match godoc
// @Summary Match traffic events against bus routes
// @Description Сопоставляет переданные события с маршрутами и возвращает аннотации route/headsign
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.MatchRequest true "События для сопоставления"
// @Success 200 {object} utils.SuccessResponse{data=dto.MatchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/match [post]
func (h *RouteHandler) Match(c *fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)))
	}

	resp, err := h.matchUC.Match(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Matched})
}

// EncodePath кодирует путь в Google encoded polyline (порядок lat, lng)
func EncodePath(path []domain.Location) string {
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = []float64{p.Lat, p.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}
