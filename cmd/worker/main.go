package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/traffic-route-matcher/internal/app"
	"github.com/traffic-route-matcher/internal/config"
	"github.com/traffic-route-matcher/internal/infrastructure/qldtraffic"
	"github.com/traffic-route-matcher/internal/pkg/logger"
	"github.com/traffic-route-matcher/internal/repository/cache"
	"github.com/traffic-route-matcher/internal/repository/postgres"
	redisRepo "github.com/traffic-route-matcher/internal/repository/redis"
	"github.com/traffic-route-matcher/internal/usecase"
	"github.com/traffic-route-matcher/internal/worker"
	"github.com/traffic-route-matcher/internal/worker/traffic"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if monitor is enabled
	if !cfg.Monitor.Enabled {
		fmt.Println("Traffic monitor is disabled in configuration. Set MONITOR_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "traffic-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Traffic Monitor Worker")
	log.Info("Configuration loaded",
		zap.Duration("interval", cfg.Monitor.Interval),
		zap.Bool("run_once", cfg.Monitor.RunOnce),
		zap.Strings("regions", cfg.Traffic.Regions),
		zap.Float64("tolerance_m", cfg.Match.ToleranceMeters),
		zap.String("prefilter", cfg.Match.PreFilter),
		zap.Bool("geocoding_enabled", cfg.GeocodingEnabled()))

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

	// 5. Load bus routes (без маршрутов события сохраняются без аннотаций)
	matcher := app.NewMatcher(&cfg.Match, log)

	// 6. Initialize repositories
	feedRepo, err := qldtraffic.NewClient(&cfg.Traffic, log)
	if err != nil {
		log.Fatal("Failed to create traffic feed client", zap.Error(err))
	}
	eventRepo := postgres.NewTrafficEventRepository(db, cfg.Events.Table, cfg.Events.UpsertChunk, location)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), 0, log)
	cacheRepo := cache.NewCacheRepository(redisClient.Client(), "geocode:", log)
	geocoder := app.NewGeocoder(&cfg.Geocode, cacheRepo, log)

	// 7. Initialize use cases
	monitoringUC := usecase.NewMonitoringUseCase(
		feedRepo,
		eventRepo,
		streamRepo,
		geocoder,
		matcher,
		cfg.Match.ToleranceMeters,
		log,
	)

	// 8. Initialize workers
	monitorWorker := traffic.NewMonitorWorker(monitoringUC, cfg.Monitor.Interval, cfg.Monitor.RunOnce, log)

	// 9. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(monitorWorker)

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		log.Info("All workers finished")
	}

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
