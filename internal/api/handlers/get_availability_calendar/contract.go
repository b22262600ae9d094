package get_availability_calendar

import (
	"context"

	getCalendar "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_availability_calendar"
)

type GetAvailabilityCalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendar.Request) (*getCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
