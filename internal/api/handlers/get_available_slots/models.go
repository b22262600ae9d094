package get_available_slots

import (
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_available_slots"
)

// Query query-параметры запроса
type Query struct {
	Date            string `schema:"date" validate:"required"`
	DurationMinutes int    `schema:"durationMinutes" validate:"gte=0,lte=720"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	ArtistID        int64    `json:"artistId"`
	DurationMinutes int      `json:"durationMinutes"`
	Blocked         string   `json:"blocked,omitempty"` // FULL_DAY | DAY_OFF
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ArtistID:        resp.ArtistID,
		DurationMinutes: resp.DurationMinutes,
		Blocked:         string(resp.Blocked),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func (q *Query) ToUseCaseRequest(artistID int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, q.Date)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ArtistID:        artistID,
		Date:            date,
		DurationMinutes: q.DurationMinutes,
	}, nil
}
