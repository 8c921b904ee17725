package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/traffic-route-matcher/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// Meta - сведения о выдаче: количество элементов и время обработки
type Meta struct {
	Total    int     `json:"total,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendError отдает AppError с его статусом. Ошибки fiber (404, 413 и т.п.)
// сохраняют свой статус, прочие ошибки превращаются в 500 без подробностей.
func SendError(c *fiber.Ctx, err error) error {
	appErr := ToAppError(err)
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{Error: appErr})
}

// ToAppError приводит произвольную ошибку к AppError для ответа клиенту
func ToAppError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}

	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return errors.ErrNotFound
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return errors.New("HTTP_ERROR", fiberErr.Message, fiberErr.Code)
		}
	}

	return errors.ErrInternalServer
}
