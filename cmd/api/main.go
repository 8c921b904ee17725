package main

// @title Traffic Route Matcher API
// @version 1.0.0
// @description Сопоставляет события дорожного движения с направлениями автобусных маршрутов.
// @description Ручной запуск цикла мониторинга, просмотр загруженных маршрутов и разовое сопоставление событий.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/traffic-route-matcher/docs/swagger"
	"github.com/traffic-route-matcher/internal/app"
	"github.com/traffic-route-matcher/internal/config"
	httpDelivery "github.com/traffic-route-matcher/internal/delivery/http"
	"github.com/traffic-route-matcher/internal/delivery/http/handler"
	"github.com/traffic-route-matcher/internal/infrastructure/qldtraffic"
	"github.com/traffic-route-matcher/internal/pkg/logger"
	"github.com/traffic-route-matcher/internal/repository/cache"
	"github.com/traffic-route-matcher/internal/repository/postgres"
	redisRepo "github.com/traffic-route-matcher/internal/repository/redis"
	"github.com/traffic-route-matcher/internal/usecase"
	"github.com/traffic-route-matcher/internal/worker/traffic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "traffic-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Traffic Route Matcher API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("monitor_enabled", cfg.Monitor.Enabled),
		zap.Bool("geocoding_enabled", cfg.GeocodingEnabled()),
	)

	location, err := time.LoadLocation(cfg.Traffic.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone", zap.String("timezone", cfg.Traffic.Timezone), zap.Error(err))
	}

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer healthCancel()

	if err := db.Health(healthCtx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(healthCtx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Load bus routes
	matcher := app.NewMatcher(&cfg.Match, log)

	// 7. Initialize repositories
	feedRepo, err := qldtraffic.NewClient(&cfg.Traffic, log)
	if err != nil {
		log.Fatal("Failed to create traffic feed client", zap.Error(err))
	}
	eventRepo := postgres.NewTrafficEventRepository(db, cfg.Events.Table, cfg.Events.UpsertChunk, location)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), 0, log)
	cacheRepo := cache.NewCacheRepository(redisClient.Client(), "geocode:", log)
	geocoder := app.NewGeocoder(&cfg.Geocode, cacheRepo, log)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	monitoringUC := usecase.NewMonitoringUseCase(
		feedRepo,
		eventRepo,
		streamRepo,
		geocoder,
		matcher,
		cfg.Match.ToleranceMeters,
		log,
	)
	matchUC := usecase.NewMatchUseCase(matcher, geocoder, cfg.Match.ToleranceMeters, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	trafficHandler := handler.NewTrafficHandler(monitoringUC, log)
	routeHandler := handler.NewRouteHandler(matchUC, log)

	server := httpDelivery.NewServer(cfg, log, trafficHandler, routeHandler)

	// 10. Run server and scheduled monitor until a signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Monitor.Enabled {
		// тот же monitoringUC, что и у ручного запуска: циклы не пересекаются
		monitorWorker := traffic.NewMonitorWorker(monitoringUC, cfg.Monitor.Interval, cfg.Monitor.RunOnce, log)
		g.Go(func() error {
			return monitorWorker.Start(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			return monitorWorker.Stop()
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Server stopped with error", zap.Error(err))
	}

	log.Info("Server exited")
}
