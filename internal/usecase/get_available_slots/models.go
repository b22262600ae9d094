package get_available_slots

import (
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ArtistID        int64     // ID мастера
	Date            time.Time // Дата (время игнорируется)
	DurationMinutes int       // Длительность сеанса; 0 - по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ArtistID        int64
	DurationMinutes int
	Blocked         availability.BlockReason // FULL_DAY, DAY_OFF или пусто
	Slots           []types.TimeString       // По возрастанию
}
