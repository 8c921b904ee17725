package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/traffic-route-matcher/internal/config"
	"go.uber.org/zap"
)

const (
	connectAttempts = 3
	connectBackoff  = 500 * time.Millisecond
)

// Redis - общий клиент для кеша геокодера и стрима аннотированных событий
type Redis struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedis подключается к Redis, повторяя ping с растущей паузой
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := ping(client, logger); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
	)

	return &Redis{
		client: client,
		logger: logger,
	}, nil
}

func ping(client redis.UniversalClient, logger *zap.Logger) error {
	backoff := connectBackoff
	var err error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			return nil
		}

		if attempt < connectAttempts {
			logger.Warn("Redis not ready, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return err
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Client возвращает клиента для репозиториев кеша и стримов
func (r *Redis) Client() redis.UniversalClient {
	return r.client
}
