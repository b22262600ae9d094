package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	getAvailableSlots "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/artists/{artistId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		ArtistID:        7,
		DurationMinutes: 90,
		Slots:           []types.TimeString{"12:00", "12:30"},
	}}

	rec := serve(uc, "/artists/7/available-slots?date=2025-06-03&durationMinutes=90")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(7), uc.got.ArtistID)
	assert.Equal(t, 90, uc.got.DurationMinutes)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-03", body["date"])
	assert.Equal(t, []interface{}{"12:00", "12:30"}, body["slots"])
	assert.NotContains(t, body, "blocked")
}

func TestHandle_Blocked(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Blocked: availability.BlockDayOff,
		Slots:   []types.TimeString{},
	}}

	rec := serve(uc, "/artists/7/available-slots?date=2025-06-02")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-02","artistId":0,"durationMinutes":0,"blocked":"DAY_OFF","slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad artist", target: "/artists/abc/available-slots?date=2025-06-03", status: http.StatusBadRequest},
		{name: "missing date", target: "/artists/7/available-slots", status: http.StatusBadRequest},
		{name: "bad date", target: "/artists/7/available-slots?date=03.06.2025", status: http.StatusBadRequest},
		{name: "bad duration", target: "/artists/7/available-slots?date=2025-06-03&durationMinutes=x", status: http.StatusBadRequest},
		{name: "duration too long", target: "/artists/7/available-slots?date=2025-06-03&durationMinutes=800", status: http.StatusBadRequest},
		{name: "not found", target: "/artists/7/available-slots?date=2025-06-03", err: getAvailableSlots.ErrArtistNotFound, status: http.StatusNotFound},
		{name: "past", target: "/artists/7/available-slots?date=2025-06-03", err: getAvailableSlots.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "internal", target: "/artists/7/available-slots?date=2025-06-03", err: getAvailableSlots.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
