package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListForArtistOnDate неотменённые бронирования мастера, начинающиеся в этот день
	ListForArtistOnDate(ctx context.Context, artistID int64, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityRepository источник расписаний мастеров (Postgres или кеш поверх него)
type AvailabilityRepository interface {
	Get(ctx context.Context, artistID int64) (*domain.AvailabilityConfig, error)
}

// ArtistRepository интерфейс репозитория мастеров
type ArtistRepository interface {
	GetArtist(ctx context.Context, artistID int64) (*domain.Artist, error)
}

// Engine расчёт слотов на день
type Engine interface {
	Compute(date time.Time, config domain.AvailabilityConfig, dayBookings []*domain.Booking, serviceDurationMinutes int) availability.Result
}

type Metrics interface {
	ObserveAvailability(outcome string, slots int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
