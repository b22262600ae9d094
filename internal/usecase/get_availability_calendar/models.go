package get_availability_calendar

import (
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// Request запрос календаря доступности за период
type Request struct {
	ArtistID        int64
	From            time.Time // включительно
	To              time.Time // включительно
	DurationMinutes int       // 0 - по умолчанию
}

// Day доступность на один день
type Day struct {
	Date    time.Time
	Blocked availability.BlockReason
	Slots   []types.TimeString
}

// Response календарь, дни по возрастанию
type Response struct {
	ArtistID        int64
	DurationMinutes int
	Days            []Day
}
