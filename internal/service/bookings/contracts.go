package bookings

import (
	"context"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// StudioRepository мастера и персонал студий
type StudioRepository interface {
	GetArtist(ctx context.Context, artistID int64) (*domain.Artist, error)
	IsStaff(ctx context.Context, studioID, userID int64) (bool, error)
}

// Notifier публикация событий о бронированиях
type Notifier interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
