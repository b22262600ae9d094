package get_availability_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/InkStudio-BookingService/internal/api/handlers"
	getCalendar "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_availability_calendar"
)

const (
	msgInvalidArtistID = "некорректный ID мастера"
	msgInvalidQuery    = "параметры from и to обязательны, durationMinutes от 0 до 720"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange    = "некорректный период: to раньше from или больше 31 дня"
	msgArtistNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetAvailabilityCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/availability-calendar
// Query params: from, to (required, YYYY-MM-DD), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathInt64(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/availability-calendar - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	var query Query
	if err := handlers.DecodeQuery(r, &query); err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	if err := handlers.Validate(query); err != nil {
		h.logger.Warn("GET /artists/{id}/availability-calendar - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq, err := query.ToUseCaseRequest(artistID)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/availability-calendar - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrArtistNotFound):
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, getCalendar.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /artists/{id}/availability-calendar - Failed: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/availability-calendar - OK: artist_id=%d, days=%d", artistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
