package get_availability_calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/ptr"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct {
	mu     sync.Mutex
	byDay  map[string][]*domain.Booking
	failOn string
	calls  []string
}

func (f *fakeBookings) ListForArtistOnDate(_ context.Context, _ int64, date time.Time) ([]*domain.Booking, error) {
	key := date.Format(domain.DateFormat)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	if key == f.failOn {
		return nil, errors.New("db down")
	}
	return f.byDay[key], nil
}

type fakeAvailability struct {
	config *domain.AvailabilityConfig
	calls  int
}

func (f *fakeAvailability) Get(_ context.Context, _ int64) (*domain.AvailabilityConfig, error) {
	f.calls++
	if f.config == nil {
		return nil, availabilityRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeArtists struct{}

func (fakeArtists) GetArtist(_ context.Context, id int64) (*domain.Artist, error) {
	switch id {
	case 7:
		return &domain.Artist{ID: 7, StudioID: 1, IsActive: true}, nil
	case 8:
		return &domain.Artist{ID: 8, StudioID: 1, IsActive: false}, nil
	}
	return nil, studioRepo.ErrArtistNotFound
}

type nopMetrics struct{}

func (nopMetrics) ObserveAvailability(string, int) {}

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(bookings *fakeBookings, cfg *fakeAvailability, now time.Time) *UseCase {
	uc := NewUseCase(bookings, cfg, fakeArtists{}, availability.NewEngine(availability.DefaultRules()),
		nopMetrics{}, time.UTC, 3, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_Week(t *testing.T) {
	bookings := &fakeBookings{byDay: map[string][]*domain.Booking{
		// среда занята длинным сеансом
		"2025-06-04": {{ArtistID: 7, StartTime: date(4).Add(12 * time.Hour), DurationMinutes: ptr.Ptr(360), Status: domain.StatusConfirmed}},
	}}
	cfg := &fakeAvailability{}
	uc := newTestUseCase(bookings, cfg, date(1))

	// вс 1 июня .. сб 7 июня
	resp, err := uc.Execute(context.Background(), &Request{ArtistID: 7, From: date(1), To: date(7)})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 1, cfg.calls)

	assert.Equal(t, availability.BlockDayOff, resp.Days[0].Blocked)
	assert.Equal(t, availability.BlockDayOff, resp.Days[1].Blocked)
	assert.Equal(t, availability.BlockNone, resp.Days[2].Blocked)
	assert.Len(t, resp.Days[2].Slots, 17)
	assert.Equal(t, availability.BlockFullDay, resp.Days[3].Blocked)
	assert.Empty(t, resp.Days[3].Slots)

	for i, d := range resp.Days {
		assert.Equal(t, date(1+i), d.Date)
	}
}

func TestExecute_PastDaysAreEmpty(t *testing.T) {
	bookings := &fakeBookings{}
	now := date(5).Add(17*time.Hour + 45*time.Minute)
	uc := newTestUseCase(bookings, &fakeAvailability{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ArtistID: 7, From: date(3), To: date(6)})
	require.NoError(t, err)

	require.Len(t, resp.Days, 4)
	assert.Empty(t, resp.Days[0].Slots)
	assert.Empty(t, resp.Days[1].Slots)
	assert.Equal(t, []types.TimeString{"18:00"}, resp.Days[2].Slots)
	assert.Len(t, resp.Days[3].Slots, 17)
	assert.ElementsMatch(t, []string{"2025-06-05", "2025-06-06"}, bookings.calls)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		failOn  string
		wantErr error
	}{
		{name: "invalid artist", req: &Request{From: date(3), To: date(4)}, wantErr: ErrInvalidInput},
		{name: "missing to", req: &Request{ArtistID: 7, From: date(3)}, wantErr: ErrInvalidInput},
		{name: "too short", req: &Request{ArtistID: 7, From: date(3), To: date(4), DurationMinutes: 14}, wantErr: ErrInvalidInput},
		{name: "inverted range", req: &Request{ArtistID: 7, From: date(5), To: date(3)}, wantErr: ErrInvalidRange},
		{name: "range too long", req: &Request{ArtistID: 7, From: date(3), To: date(3).AddDate(0, 0, 31)}, wantErr: ErrInvalidRange},
		{name: "unknown artist", req: &Request{ArtistID: 99, From: date(3), To: date(4)}, wantErr: ErrArtistNotFound},
		{name: "inactive artist", req: &Request{ArtistID: 8, From: date(3), To: date(4)}, wantErr: ErrArtistNotFound},
		{name: "storage failure", req: &Request{ArtistID: 7, From: date(3), To: date(6)}, failOn: "2025-06-05", wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookings{failOn: tt.failOn}, &fakeAvailability{}, date(1))
			_, err := uc.Execute(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExecute_MaxRangeAllowed(t *testing.T) {
	uc := newTestUseCase(&fakeBookings{}, &fakeAvailability{}, date(1))

	resp, err := uc.Execute(context.Background(), &Request{ArtistID: 7, From: date(1), To: date(1).AddDate(0, 0, 30)})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 31)
}
