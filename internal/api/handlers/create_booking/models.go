package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	createBooking "github.com/m04kA/InkStudio-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model. Клиент берётся из X-User-ID.
type CreateBookingRequest struct {
	ArtistID        int64   `json:"artistId" validate:"required,gt=0"`
	Date            string  `json:"date" validate:"required"`      // "2025-10-15"
	StartTime       string  `json:"startTime" validate:"required"` // "12:00"
	DurationMinutes int     `json:"durationMinutes" validate:"gte=0,lte=720"`
	ServiceName     string  `json:"serviceName" validate:"required,max=200"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	StudioID        int64   `json:"studioId"`
	ArtistID        int64   `json:"artistId"`
	ClientID        int64   `json:"clientId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	StartsAt        string  `json:"startsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		ClientID:        clientID,
		ArtistID:        r.ArtistID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		ServiceName:     r.ServiceName,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		StudioID:        resp.StudioID,
		ArtistID:        resp.ArtistID,
		ClientID:        resp.ClientID,
		Date:            resp.StartTime.Format(domain.DateFormat),
		StartTime:       resp.StartTime.Format(domain.TimeFormat),
		EndTime:         resp.EndTime.Format(domain.TimeFormat),
		StartsAt:        resp.StartTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
