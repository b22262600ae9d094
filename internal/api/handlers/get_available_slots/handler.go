package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/InkStudio-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidArtistID = "некорректный ID мастера"
	msgInvalidQuery    = "некорректные параметры запроса"
	msgMissingDate     = "дата обязательна, durationMinutes от 0 до 720"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast      = "дата в прошлом"
	msgArtistNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (optional, default 60)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := handlers.PathInt64(r, "artistId")
	if err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	var query Query
	if err := handlers.DecodeQuery(r, &query); err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	if err := handlers.Validate(query); err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := query.ToUseCaseRequest(artistID)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrArtistNotFound):
			h.logger.Warn("GET /artists/{id}/available-slots - Artist not found: artist_id=%d", artistID)
			handlers.RespondNotFound(w, msgArtistNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /artists/{id}/available-slots - Failed to get slots: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/available-slots - Slots retrieved successfully: artist_id=%d, slots_count=%d",
		artistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
