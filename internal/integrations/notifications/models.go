package notifications

import "time"

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent тело сообщения о бронировании
type BookingEvent struct {
	EventID            string    `json:"eventId"`
	EventType          string    `json:"eventType"`
	OccurredAt         time.Time `json:"occurredAt"`
	BookingID          int64     `json:"bookingId"`
	StudioID           int64     `json:"studioId"`
	ArtistID           int64     `json:"artistId"`
	ClientID           int64     `json:"clientId"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Status             string    `json:"status"`
	ServiceName        string    `json:"serviceName,omitempty"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
}
