package get_artist_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/InkStudio-BookingService/internal/api/handlers"
	"github.com/m04kA/InkStudio-BookingService/internal/service/availability"
)

const (
	msgInvalidArtistID = "некорректный ID мастера"
	msgArtistNotFound  = "мастер не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/availability
// Публичный endpoint - без авторизации. Если расписание не настроено, возвращаются значения по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathInt64(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/availability - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	result, err := h.service.Get(r.Context(), artistID)
	if err != nil {
		if errors.Is(err, availability.ErrArtistNotFound) {
			handlers.RespondNotFound(w, msgArtistNotFound)
			return
		}
		h.logger.Error("GET /artists/{id}/availability - Failed to get availability: artist_id=%d, error=%v", artistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /artists/{id}/availability - Availability retrieved: artist_id=%d, default=%t", artistID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
