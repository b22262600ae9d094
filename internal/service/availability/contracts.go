package availability

import (
	"context"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

// AvailabilityRepository хранилище расписаний (кеш поверх Postgres)
type AvailabilityRepository interface {
	Get(ctx context.Context, artistID int64) (*domain.AvailabilityConfig, error)
	Upsert(ctx context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error)
	Delete(ctx context.Context, artistID int64) error
}

// StudioRepository мастера и персонал студий
type StudioRepository interface {
	GetArtist(ctx context.Context, artistID int64) (*domain.Artist, error)
	IsStaff(ctx context.Context, studioID, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
