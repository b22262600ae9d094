package reset_artist_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/InkStudio-BookingService/internal/api/handlers"
	"github.com/m04kA/InkStudio-BookingService/internal/api/middleware"
	"github.com/m04kA/InkStudio-BookingService/internal/service/availability"
)

const (
	msgInvalidArtistID = "некорректный ID мастера"
	msgUnauthorized    = "требуется авторизация"
	msgArtistNotFound  = "мастер не найден"
	msgConfigNotFound  = "расписание не настроено"
	msgForbidden       = "доступ запрещен"
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

// Handle DELETE /api/v1/artists/{artistId}/availability
// Мастер возвращается к расписанию по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	artistID, err := handlers.PathInt64(r, "artistId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	if err := h.service.Reset(r.Context(), artistID, userID); err != nil {
		switch {
		case errors.Is(err, availability.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)
		case errors.Is(err, availability.ErrConfigNotFound):
			handlers.RespondNotFound(w, msgConfigNotFound)
		case errors.Is(err, availability.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /artists/{id}/availability - Failed to reset: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /artists/{id}/availability - Availability reset: artist_id=%d, user_id=%d", artistID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
