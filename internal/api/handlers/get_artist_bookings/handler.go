package get_artist_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/api/handlers"
	"github.com/m04kA/InkStudio-BookingService/internal/api/middleware"
	"github.com/m04kA/InkStudio-BookingService/internal/service/bookings"
)

const (
	msgInvalidArtistID   = "некорректный ID мастера"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParameters = "некорректные параметры запроса"
	msgArtistNotFound    = "мастер не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathInt64(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var q Query
	if err := handlers.DecodeQuery(r, &q); err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParameters)
		return
	}

	serviceReq, err := q.ToServiceRequest(artistID, userID, h.location)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParameters)
		return
	}

	result, err := h.service.GetArtistBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /artists/{id}/bookings - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /artists/{id}/bookings - Failed to get bookings: artist_id=%d, error=%v",
				artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/bookings - Bookings retrieved successfully: artist_id=%d, count=%d",
		artistID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
