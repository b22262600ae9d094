package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

const keyPrefix = "availability:artist:"

// Cache read-through кеш расписаний мастеров.
// Ошибки Redis не пробрасываются: запрос уходит в Store.
//
// Записи версионируются счётчиком поколения мастера. Запись увеличивает поколение,
// поэтому значение, прочитанное из Store до записи, попадает под старый ключ и больше не читается.
type Cache struct {
	store   Store
	client  RedisClient
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewCache оборачивает store кешем. metrics может быть nil.
func NewCache(store Store, client RedisClient, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	return &Cache{
		store:   store,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// cachedConfig форма хранения в Redis; nil и пустой DaysOff различаются (null и [])
type cachedConfig struct {
	ArtistID      int64     `json:"artistId"`
	StudioID      int64     `json:"studioId"`
	WorkStart     *string   `json:"workStart"`
	WorkEnd       *string   `json:"workEnd"`
	DaysOff       []int     `json:"daysOff"`
	ExplicitSlots []string  `json:"explicitSlots"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Key ключ значения для поколения gen
func Key(artistID, gen int64) string {
	return fmt.Sprintf("%s%d:v%d", keyPrefix, artistID, gen)
}

// GenerationKey ключ счётчика поколения; без TTL
func GenerationKey(artistID int64) string {
	return fmt.Sprintf("%s%d:gen", keyPrefix, artistID)
}

func (c *Cache) Get(ctx context.Context, artistID int64) (*domain.AvailabilityConfig, error) {
	// Поколение читается до Store: иначе нельзя отличить устаревшее значение
	gen, err := c.generation(ctx, artistID)
	if err != nil {
		c.logger.Warn("availability cache: generation artist_id=%d: %v", artistID, err)
		c.observe("error")
		return c.store.Get(ctx, artistID)
	}

	key := Key(artistID, gen)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		cfg, decodeErr := decode(raw)
		if decodeErr == nil {
			c.observe("hit")
			return cfg, nil
		}
		c.logger.Warn("availability cache: corrupted entry %s: %v", key, decodeErr)
		c.observe("error")
	case errors.Is(err, redis.Nil):
		c.observe("miss")
	default:
		c.logger.Warn("availability cache: get %s: %v", key, err)
		c.observe("error")
	}

	cfg, err := c.store.Get(ctx, artistID)
	if err != nil {
		return nil, err
	}

	if raw, err := encode(cfg); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("availability cache: set %s: %v", key, err)
		}
	}

	return cfg, nil
}

// Upsert пишет в Store и сдвигает поколение, следующее чтение заполнит кеш заново
func (c *Cache) Upsert(ctx context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	saved, err := c.store.Upsert(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, cfg.ArtistID)
	return saved, nil
}

// Delete удаляет расписание из Store и сдвигает поколение
func (c *Cache) Delete(ctx context.Context, artistID int64) error {
	if err := c.store.Delete(ctx, artistID); err != nil {
		return err
	}

	c.invalidate(ctx, artistID)
	return nil
}

func (c *Cache) generation(ctx context.Context, artistID int64) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey(artistID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// invalidate старые ключи не удаляются, они истекают по TTL
func (c *Cache) invalidate(ctx context.Context, artistID int64) {
	if err := c.client.Incr(ctx, GenerationKey(artistID)).Err(); err != nil {
		c.logger.Warn("availability cache: invalidate artist_id=%d: %v", artistID, err)
	}
}

func (c *Cache) observe(result string) {
	if c.metrics != nil {
		c.metrics.ObserveCache(result)
	}
}

func encode(cfg *domain.AvailabilityConfig) ([]byte, error) {
	dto := cachedConfig{
		ArtistID:      cfg.ArtistID,
		StudioID:      cfg.StudioID,
		DaysOff:       cfg.DaysOff,
		ExplicitSlots: cfg.ExplicitSlots,
		UpdatedAt:     cfg.UpdatedAt,
	}
	if cfg.WorkStart != nil {
		s := cfg.WorkStart.String()
		dto.WorkStart = &s
	}
	if cfg.WorkEnd != nil {
		s := cfg.WorkEnd.String()
		dto.WorkEnd = &s
	}
	return json.Marshal(dto)
}

func decode(raw []byte) (*domain.AvailabilityConfig, error) {
	var dto cachedConfig
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}

	cfg := &domain.AvailabilityConfig{
		ArtistID:      dto.ArtistID,
		StudioID:      dto.StudioID,
		DaysOff:       dto.DaysOff,
		ExplicitSlots: dto.ExplicitSlots,
		UpdatedAt:     dto.UpdatedAt,
	}
	if dto.WorkStart != nil {
		ts, err := types.NewTimeStringFromString(*dto.WorkStart)
		if err != nil {
			return nil, err
		}
		cfg.WorkStart = &ts
	}
	if dto.WorkEnd != nil {
		ts, err := types.NewTimeStringFromString(*dto.WorkEnd)
		if err != nil {
			return nil, err
		}
		cfg.WorkEnd = &ts
	}
	return cfg, nil
}
