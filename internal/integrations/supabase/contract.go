package supabase

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Verifier проверка access token у провайдера
type Verifier interface {
	GetUser(ctx context.Context, token string) (*AuthUser, error)
}

// RedisClient подмножество go-redis, нужное кэшу
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// LookupRecorder счетчик попаданий кэша (*metrics.Metrics)
type LookupRecorder interface {
	IncIdentityLookup(result string)
}
