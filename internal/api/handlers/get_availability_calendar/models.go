package get_availability_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	getCalendar "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_availability_calendar"
)

// Query query-параметры запроса
type Query struct {
	From            string `schema:"from" validate:"required"`
	To              string `schema:"to" validate:"required"`
	DurationMinutes int    `schema:"durationMinutes" validate:"gte=0,lte=720"`
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ArtistID        int64         `json:"artistId"`
	DurationMinutes int           `json:"durationMinutes"`
	Days            []DayResponse `json:"days"`
}

// DayResponse доступность на один день
type DayResponse struct {
	Date    string   `json:"date"`
	Blocked string   `json:"blocked,omitempty"`
	Slots   []string `json:"slots"`
}

func (q *Query) ToUseCaseRequest(artistID int64) (*getCalendar.Request, error) {
	from, err := time.Parse(domain.DateFormat, q.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, q.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	return &getCalendar.Request{
		ArtistID:        artistID,
		From:            from,
		To:              to,
		DurationMinutes: q.DurationMinutes,
	}, nil
}

func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, d := range resp.Days {
		slots := make([]string, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = s.String()
		}
		days[i] = DayResponse{
			Date:    d.Date.Format(domain.DateFormat),
			Blocked: string(d.Blocked),
			Slots:   slots,
		}
	}

	return &CalendarResponse{
		ArtistID:        resp.ArtistID,
		DurationMinutes: resp.DurationMinutes,
		Days:            days,
	}
}
