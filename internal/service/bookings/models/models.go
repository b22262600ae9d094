package models

import (
	"errors"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"-"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64   // кто запрашивает
	ClientID int64   // чьи бронирования
	Status   *string // фильтр по статусу (опционально)
}

// GetArtistBookingsRequest запрос на получение бронирований мастера
type GetArtistBookingsRequest struct {
	UserID           int64
	ArtistID         int64
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetArtistBookingsRequest) ToDomainFilter() (domain.ArtistBookingsFilter, error) {
	filter := domain.ArtistBookingsFilter{
		ArtistID:         r.ArtistID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	StudioID        int64     `json:"studioId"`
	ArtistID        int64     `json:"artistId"`
	ClientID        int64     `json:"clientId"`
	Date            string    `json:"date"`      // "2025-10-15"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`   // "12:00"
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"serviceName"`
	Notes           *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO.
// Дата и время отображаются в часовом поясе студии loc, а не в поясе сессии БД.
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start, end := b.Interval()
	start, end = start.In(loc), end.In(loc)
	resp := &BookingResponse{
		ID:                 b.ID,
		StudioID:           b.StudioID,
		ArtistID:           b.ArtistID,
		ClientID:           b.ClientID,
		Date:               start.Format(domain.DateFormat),
		StartTime:          start.Format(domain.TimeFormat),
		EndTime:            end.Format(domain.TimeFormat),
		StartsAt:           start,
		EndsAt:             end,
		DurationMinutes:    int(b.Duration() / time.Minute),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.In(loc).Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
