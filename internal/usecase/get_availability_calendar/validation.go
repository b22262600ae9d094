package get_availability_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !domain.ValidServiceDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be 0 or in %d..%d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}

// dayRange возвращает дни [from, to] в поясе loc
func dayRange(from, to time.Time, loc *time.Location) ([]time.Time, error) {
	start := truncateDay(from, loc)
	end := truncateDay(to, loc)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		if len(days) > domain.MaxCalendarRangeDays {
			return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxCalendarRangeDays)
		}
	}
	return days, nil
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
