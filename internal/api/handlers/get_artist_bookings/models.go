package get_artist_bookings

import (
	"fmt"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/internal/service/bookings/models"
)

// Query параметры фильтрации. date задаёт один день и имеет приоритет над from/to.
type Query struct {
	Date             string `schema:"date"`
	From             string `schema:"from"`
	To               string `schema:"to"`
	Status           string `schema:"status"`
	IncludeCancelled bool   `schema:"includeCancelled"`
}

// ToServiceRequest формирует запрос к сервису; даты в часовом поясе студии
func (q *Query) ToServiceRequest(artistID, userID int64, loc *time.Location) (*models.GetArtistBookingsRequest, error) {
	req := &models.GetArtistBookingsRequest{
		UserID:           userID,
		ArtistID:         artistID,
		IncludeCancelled: q.IncludeCancelled,
	}

	if q.Status != "" {
		req.Status = &q.Status
	}

	if q.Date != "" {
		date, err := parseDate(q.Date, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
		return req, nil
	}

	if q.From != "" {
		from, err := parseDate(q.From, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}
	if q.To != "" {
		to, err := parseDate(q.To, loc)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	return req, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
