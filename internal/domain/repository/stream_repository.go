package repository

import "context"

// StreamRepository доставляет аннотированные события подписчикам через Redis Streams
type StreamRepository interface {
	// PublishToStream сериализует data в JSON и добавляет запись в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
