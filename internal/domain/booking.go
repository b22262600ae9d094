package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a tattoo session on an artist's calendar
type Booking struct {
	ID       int64
	StudioID int64
	ArtistID int64
	ClientID int64

	StartTime time.Time
	// EndTime и DurationMinutes опциональны: при отсутствии обоих сеанс длится DefaultBookingDurationMinutes
	EndTime         *time.Time
	DurationMinutes *int
	Status          BookingStatus

	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает каноническое время занятости [start, end).
// Приоритет: EndTime, затем DurationMinutes, затем длительность по умолчанию.
func (b *Booking) Interval() (time.Time, time.Time) {
	if b.EndTime != nil && b.EndTime.After(b.StartTime) {
		return b.StartTime, *b.EndTime
	}
	minutes := DefaultBookingDurationMinutes
	if b.DurationMinutes != nil && *b.DurationMinutes > 0 {
		minutes = *b.DurationMinutes
	}
	return b.StartTime, b.StartTime.Add(time.Duration(minutes) * time.Minute)
}

// Duration возвращает длительность сеанса
func (b *Booking) Duration() time.Duration {
	start, end := b.Interval()
	return end.Sub(start)
}

// ValidServiceDuration 0 означает длительность по умолчанию
func ValidServiceDuration(minutes int) bool {
	if minutes == 0 {
		return true
	}
	return minutes >= MinServiceDurationMinutes && minutes <= MaxServiceDurationMinutes
}

// OccupiesTime returns true if the booking blocks the artist's calendar
func (b *Booking) OccupiesTime() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsValidStatus проверяет, что статус известен системе
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ArtistBookingsFilter фильтр для получения бронирований мастера
type ArtistBookingsFilter struct {
	ArtistID         int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода включительно (опционально)
	EndDate          *time.Time     // Конец периода включительно (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
