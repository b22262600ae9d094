package reset_artist_availability

import "context"

type AvailabilityService interface {
	Reset(ctx context.Context, artistID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
