package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/InkStudio-BookingService/internal/api/handlers"
	"github.com/m04kA/InkStudio-BookingService/internal/api/middleware"
	"github.com/m04kA/InkStudio-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBookingNotFound  = "бронирование не найдено"
	msgNotOwnerOrStaff  = "запись доступна только клиенту и персоналу студии"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Время сеанса в ответе указано в часовом поясе студии.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{bookingId} - bad id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), bookingID, userID)
	switch {
	case err == nil:
		h.logger.Info("GET /bookings/{bookingId} - booking_id=%d artist_id=%d shown to user_id=%d",
			bookingID, resp.ArtistID, userID)
		handlers.RespondJSON(w, http.StatusOK, resp)

	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)

	// не клиент записи и не сотрудник студии мастера
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{bookingId} - user_id=%d is neither client nor staff for booking_id=%d",
			userID, bookingID)
		handlers.RespondForbidden(w, msgNotOwnerOrStaff)

	default:
		h.logger.Error("GET /bookings/{bookingId} - booking_id=%d: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
