package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/internal/service/bookings/models"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/ptr"
)

const (
	clientID = int64(42)
	staffID  = int64(100)
	otherID  = int64(500)
	studioID = int64(3)
	artistID = int64(7)
)

type fakeBookings struct {
	items        map[int64]*domain.Booking
	cancelled    []int64
	updated      map[int64]domain.BookingStatus
	lastFilter   domain.ArtistBookingsFilter
	cancelErr    error
	clientStatus *domain.BookingStatus
}

func newFakeBookings() *fakeBookings {
	start := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	return &fakeBookings{
		items: map[int64]*domain.Booking{
			1: {ID: 1, StudioID: studioID, ArtistID: artistID, ClientID: clientID, StartTime: start, DurationMinutes: ptr.Ptr(120), Status: domain.StatusPending},
			2: {ID: 2, StudioID: studioID, ArtistID: artistID, ClientID: clientID, StartTime: start, Status: domain.StatusCompleted},
			3: {ID: 3, StudioID: studioID, ArtistID: artistID, ClientID: clientID, StartTime: start, Status: domain.StatusCancelled},
		},
		updated: map[int64]domain.BookingStatus{},
	}
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) GetByClientID(_ context.Context, id int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.clientStatus = status
	var out []*domain.Booking
	for _, b := range f.items {
		if b.ClientID == id {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) GetByArtistWithFilter(_ context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return []*domain.Booking{f.items[1]}, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.updated[id] = status
	return nil
}

func (f *fakeBookings) Cancel(_ context.Context, id int64, _ *string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeStudio struct{}

func (fakeStudio) GetArtist(_ context.Context, id int64) (*domain.Artist, error) {
	if id != artistID {
		return nil, studioRepo.ErrArtistNotFound
	}
	return &domain.Artist{ID: artistID, StudioID: studioID, IsActive: true}, nil
}

func (fakeStudio) IsStaff(_ context.Context, studio, user int64) (bool, error) {
	return studio == studioID && user == staffID, nil
}

type fakeNotifier struct {
	cancelled []*domain.Booking
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, b *domain.Booking) {
	f.cancelled = append(f.cancelled, b)
}

func newService(b *fakeBookings, n *fakeNotifier) *Service {
	return NewService(b, fakeStudio{}, n, time.UTC, logger.NewNop())
}

func TestGetByID_Access(t *testing.T) {
	svc := newService(newFakeBookings(), &fakeNotifier{})

	resp, err := svc.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	assert.Equal(t, "12:00", resp.StartTime)
	assert.Equal(t, "14:00", resp.EndTime)
	assert.Equal(t, 120, resp.DurationMinutes)

	_, err = svc.GetByID(context.Background(), 1, staffID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, otherID)
	assert.True(t, errors.Is(err, ErrAccessDenied))

	_, err = svc.GetByID(context.Background(), 99, clientID)
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}

func TestGetClientBookings(t *testing.T) {
	b := newFakeBookings()
	svc := newService(b, &fakeNotifier{})

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: clientID, ClientID: clientID, Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)
	require.NotNil(t, b.clientStatus)
	assert.Equal(t, domain.StatusPending, *b.clientStatus)

	_, err = svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{UserID: otherID, ClientID: clientID})
	assert.True(t, errors.Is(err, ErrAccessDenied))

	_, err = svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: clientID, ClientID: clientID, Status: ptr.Ptr("in_progress"),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGetArtistBookings(t *testing.T) {
	b := newFakeBookings()
	svc := newService(b, &fakeNotifier{})
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	resp, err := svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{
		UserID: staffID, ArtistID: artistID, StartDate: &from, EndDate: &to, IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, artistID, b.lastFilter.ArtistID)
	assert.True(t, b.lastFilter.IncludeCancelled)

	_, err = svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{UserID: clientID, ArtistID: artistID})
	assert.True(t, errors.Is(err, ErrAccessDenied))

	_, err = svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{UserID: staffID, ArtistID: 99})
	assert.True(t, errors.Is(err, ErrArtistNotFound))

	_, err = svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{
		UserID: staffID, ArtistID: artistID, StartDate: &to, EndDate: &from,
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels and event is published", func(t *testing.T) {
		b := newFakeBookings()
		n := &fakeNotifier{}
		svc := newService(b, n)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: clientID, CancellationReason: ptr.Ptr("заболел"),
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.NotNil(t, resp.CancelledAt)
		assert.Equal(t, []int64{1}, b.cancelled)
		require.Len(t, n.cancelled, 1)
		assert.Equal(t, domain.StatusCancelled, n.cancelled[0].Status)
	})

	t.Run("staff cancels", func(t *testing.T) {
		svc := newService(newFakeBookings(), &fakeNotifier{})
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: staffID})
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		b := newFakeBookings()
		svc := newService(b, &fakeNotifier{})
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: otherID})
		assert.True(t, errors.Is(err, ErrAccessDenied))
		assert.Empty(t, b.cancelled)
	})

	t.Run("completed and cancelled cannot be cancelled", func(t *testing.T) {
		svc := newService(newFakeBookings(), &fakeNotifier{})
		_, err := svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: clientID})
		assert.True(t, errors.Is(err, ErrCannotCancel))
		_, err = svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{UserID: clientID})
		assert.True(t, errors.Is(err, ErrCannotCancel))
	})

	t.Run("concurrent status change", func(t *testing.T) {
		b := newFakeBookings()
		b.cancelErr = bookingRepo.ErrCannotCancel
		n := &fakeNotifier{}
		svc := newService(b, n)
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
		assert.True(t, errors.Is(err, ErrCannotCancel))
		assert.Empty(t, n.cancelled)
	})
}

func TestUpdateStatus(t *testing.T) {
	b := newFakeBookings()
	svc := newService(b, &fakeNotifier{})

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: staffID, Status: "confirmed"}))
	assert.Equal(t, domain.StatusConfirmed, b.updated[1])

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: clientID, Status: "confirmed"})
	assert.True(t, errors.Is(err, ErrAccessDenied))

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: staffID, Status: "bogus"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: staffID, Status: "cancelled"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = svc.UpdateStatus(context.Background(), 3, &models.UpdateStatusRequest{UserID: staffID, Status: "completed"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestBookingTimesInStudioZone(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// lib/pq возвращает TIMESTAMPTZ в поясе сессии БД
	b := newFakeBookings()
	b.items[4] = &domain.Booking{
		ID: 4, StudioID: studioID, ArtistID: artistID, ClientID: clientID,
		StartTime:       time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		DurationMinutes: ptr.Ptr(90),
		Status:          domain.StatusConfirmed,
	}
	b.items[5] = &domain.Booking{
		ID: 5, StudioID: studioID, ArtistID: artistID, ClientID: clientID,
		StartTime: time.Date(2025, 6, 2, 22, 30, 0, 0, time.UTC),
		Status:    domain.StatusPending,
	}
	svc := NewService(b, fakeStudio{}, &fakeNotifier{}, moscow, logger.NewNop())

	resp, err := svc.GetByID(context.Background(), 4, clientID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", resp.Date)
	assert.Equal(t, "12:00", resp.StartTime)
	assert.Equal(t, "13:30", resp.EndTime)
	assert.Equal(t, moscow, resp.StartsAt.Location())

	// по UTC ещё 2 июня, в студии уже 3-е
	resp, err = svc.GetByID(context.Background(), 5, staffID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", resp.Date)
	assert.Equal(t, "01:30", resp.StartTime)
	assert.Equal(t, "02:30", resp.EndTime)
}
