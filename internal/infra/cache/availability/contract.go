package availability

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

// Store источник истины для расписаний (Postgres)
type Store interface {
	Get(ctx context.Context, artistID int64) (*domain.AvailabilityConfig, error)
	Upsert(ctx context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error)
	Delete(ctx context.Context, artistID int64) error
}

// RedisClient подмножество *redis.Client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type Metrics interface {
	ObserveCache(result string)
}

type Logger interface {
	Warn(format string, v ...interface{})
}
