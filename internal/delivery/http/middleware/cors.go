package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS разрешает чтение маршрутов и ручной запуск цикла с любых origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  fiber.MethodGet + "," + fiber.MethodPost + "," + fiber.MethodOptions,
		AllowHeaders:  fiber.HeaderContentType + "," + fiber.HeaderAccept,
		ExposeHeaders: fiber.HeaderContentLength,
		MaxAge:        3600,
	})
}
