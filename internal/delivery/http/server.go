package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/traffic-route-matcher/internal/config"
	"github.com/traffic-route-matcher/internal/delivery/http/handler"
	"github.com/traffic-route-matcher/internal/delivery/http/middleware"
	"github.com/traffic-route-matcher/internal/pkg/utils"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	trafficHandler *handler.TrafficHandler
	routeHandler   *handler.RouteHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	trafficHandler *handler.TrafficHandler,
	routeHandler *handler.RouteHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Traffic Route Matcher",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // ручной запуск цикла ждёт фид, геокодер и БД
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		trafficHandler: trafficHandler,
		routeHandler:   routeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger UI, спецификация регистрируется пакетом docs/swagger
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.routeHandler.Health)

	// Traffic monitoring
	api.Post("/traffic-events/upload", s.trafficHandler.UploadTrafficEvents)

	// Bus routes
	api.Get("/routes", s.routeHandler.GetRoutes)
	api.Post("/match", s.routeHandler.Match)
}

// App возвращает приложение Fiber (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler логирует ошибку и отдает её в общем формате ответа
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := utils.ToAppError(err)

		fields := []zap.Field{
			zap.String("path", c.Path()),
			zap.Int("status", appErr.StatusCode),
			zap.Error(err),
		}
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error", fields...)
		} else {
			logger.Warn("HTTP Error", fields...)
		}

		return utils.SendError(c, appErr)
	}
}
