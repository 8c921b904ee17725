package repository

import (
	"context"
	"time"
)

// CacheRepository - хранилище ответов внешних сервисов с ограниченным сроком жизни
type CacheRepository interface {
	// Get возвращает значение по ключу; при промахе nil без ошибки
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение на ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
