package get_artist_bookings

import (
	"context"

	"github.com/m04kA/InkStudio-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetArtistBookings(ctx context.Context, req *models.GetArtistBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
