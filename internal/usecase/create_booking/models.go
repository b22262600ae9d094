package create_booking

import (
	"time"

	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID        int64            // ID клиента (из заголовка X-User-ID)
	ArtistID        int64            // ID мастера
	Date            time.Time        // Дата сеанса (время игнорируется)
	StartTime       types.TimeString // Время начала, например "12:00"
	DurationMinutes int              // Длительность; 0 - по умолчанию
	ServiceName     string           // Описание работы
	Notes           *string          // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	StudioID        int64
	ArtistID        int64
	ClientID        int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	ServiceName     string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
