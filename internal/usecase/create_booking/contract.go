package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// ListForArtistOnDate внутри транзакции блокирует строки (FOR UPDATE)
	ListForArtistOnDate(ctx context.Context, artistID int64, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityRepository источник расписаний мастеров
type AvailabilityRepository interface {
	Get(ctx context.Context, artistID int64) (*domain.AvailabilityConfig, error)
}

// ArtistRepository интерфейс репозитория мастеров
type ArtistRepository interface {
	GetArtist(ctx context.Context, artistID int64) (*domain.Artist, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

type Engine interface {
	Compute(date time.Time, config domain.AvailabilityConfig, dayBookings []*domain.Booking, serviceDurationMinutes int) availability.Result
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикация событий о бронированиях
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
}

type Metrics interface {
	ObserveBookingCreated(status string)
	ObserveBookingConflict(reason string)
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
