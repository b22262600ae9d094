package get_availability_calendar

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
	getCalendar "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_availability_calendar"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

type fakeUseCase struct {
	got *getCalendar.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getCalendar.Request) (*getCalendar.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getCalendar.Response{
		ArtistID:        req.ArtistID,
		DurationMinutes: 120,
		Days: []getCalendar.Day{
			{Date: req.From, Blocked: availability.BlockDayOff, Slots: []types.TimeString{}},
			{Date: req.From.AddDate(0, 0, 1), Slots: []types.TimeString{"10:00"}},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/artists/{artistId}/availability-calendar", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/artists/7/availability-calendar?from=2025-06-02&to=2025-06-03")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), uc.got.From)

	var body CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Days, 2)
	assert.Equal(t, "DAY_OFF", body.Days[0].Blocked)
	assert.Empty(t, body.Days[0].Slots)
	assert.Equal(t, "2025-06-03", body.Days[1].Date)
	assert.Equal(t, []string{"10:00"}, body.Days[1].Slots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad artist", target: "/artists/abc/availability-calendar?from=2025-06-02&to=2025-06-03", status: http.StatusBadRequest},
		{name: "missing to", target: "/artists/7/availability-calendar?from=2025-06-02", status: http.StatusBadRequest},
		{name: "bad date", target: "/artists/7/availability-calendar?from=02.06.2025&to=2025-06-03", status: http.StatusBadRequest},
		{name: "range", target: "/artists/7/availability-calendar?from=2025-06-02&to=2025-08-03", err: getCalendar.ErrInvalidRange, status: http.StatusBadRequest},
		{name: "not found", target: "/artists/7/availability-calendar?from=2025-06-02&to=2025-06-03", err: getCalendar.ErrArtistNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/artists/7/availability-calendar?from=2025-06-02&to=2025-06-03", err: getCalendar.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&fakeUseCase{err: tt.err}, tt.target).Code)
		})
	}
}
