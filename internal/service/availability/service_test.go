package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/internal/service/availability/models"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/ptr"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

const (
	artistID = int64(7)
	studioID = int64(3)
	staffID  = int64(100)
)

type fakeRepo struct {
	configs map[int64]*domain.AvailabilityConfig
}

func (f *fakeRepo) Get(_ context.Context, id int64) (*domain.AvailabilityConfig, error) {
	cfg, ok := f.configs[id]
	if !ok {
		return nil, availabilityRepo.ErrConfigNotFound
	}
	return cfg, nil
}

func (f *fakeRepo) Upsert(_ context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	cfg.UpdatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.configs[cfg.ArtistID] = cfg
	return cfg, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.configs[id]; !ok {
		return availabilityRepo.ErrConfigNotFound
	}
	delete(f.configs, id)
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

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{configs: map[int64]*domain.AvailabilityConfig{}}
	return NewService(repo, fakeStudio{}, logger.NewNop()), repo
}

func TestGet_DefaultsWhenNotConfigured(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Get(context.Background(), artistID)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, "10:00", resp.WorkStart)
	assert.Equal(t, "19:00", resp.WorkEnd)
	assert.Equal(t, []int{0, 1}, resp.DaysOff)
	assert.Equal(t, []string{}, resp.ExplicitSlots)
	assert.Nil(t, resp.UpdatedAt)

	_, err = svc.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrArtistNotFound))
}

func TestGet_MergesStored(t *testing.T) {
	svc, repo := newService()
	repo.configs[artistID] = &domain.AvailabilityConfig{
		ArtistID: artistID,
		WorkEnd:  ptr.Ptr(types.TimeString("21:00")),
		DaysOff:  []int{},
	}

	resp, err := svc.Get(context.Background(), artistID)
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, "10:00", resp.WorkStart)
	assert.Equal(t, "21:00", resp.WorkEnd)
	assert.Equal(t, []int{}, resp.DaysOff)
}

func TestUpdate(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Update(context.Background(), artistID, &models.UpdateAvailabilityRequest{
		UserID:        staffID,
		WorkStart:     ptr.Ptr("9:00"),
		DaysOff:       []int{6, 0, 6},
		ExplicitSlots: []string{"15:00", "09:00", "15:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.WorkStart)
	assert.Equal(t, "19:00", resp.WorkEnd)
	assert.Equal(t, []int{0, 6}, resp.DaysOff)
	assert.Equal(t, []string{"09:00", "15:00"}, resp.ExplicitSlots)
	require.NotNil(t, resp.UpdatedAt)

	stored := repo.configs[artistID]
	require.NotNil(t, stored)
	assert.Equal(t, studioID, stored.StudioID)
	assert.Nil(t, stored.WorkEnd)
}

func TestUpdate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateAvailabilityRequest
		wantErr error
	}{
		{name: "not staff", req: models.UpdateAvailabilityRequest{UserID: 1}, wantErr: ErrAccessDenied},
		{name: "bad work start", req: models.UpdateAvailabilityRequest{UserID: staffID, WorkStart: ptr.Ptr("10am")}, wantErr: ErrInvalidInput},
		{name: "start after end", req: models.UpdateAvailabilityRequest{UserID: staffID, WorkStart: ptr.Ptr("20:00")}, wantErr: ErrInvalidInput},
		{name: "equal bounds", req: models.UpdateAvailabilityRequest{UserID: staffID, WorkStart: ptr.Ptr("12:00"), WorkEnd: ptr.Ptr("12:00")}, wantErr: ErrInvalidInput},
		{name: "day out of range", req: models.UpdateAvailabilityRequest{UserID: staffID, DaysOff: []int{7}}, wantErr: ErrInvalidInput},
		{name: "garbage slot", req: models.UpdateAvailabilityRequest{UserID: staffID, ExplicitSlots: []string{"12:00", "noon"}}, wantErr: ErrInvalidInput},
		{name: "too many slots", req: models.UpdateAvailabilityRequest{UserID: staffID, ExplicitSlots: make([]string, 49)}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			req := tt.req
			_, err := svc.Update(context.Background(), artistID, &req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, repo.configs)
		})
	}
}

func TestReset(t *testing.T) {
	svc, repo := newService()
	repo.configs[artistID] = &domain.AvailabilityConfig{ArtistID: artistID}

	assert.True(t, errors.Is(svc.Reset(context.Background(), artistID, 1), ErrAccessDenied))
	require.NoError(t, svc.Reset(context.Background(), artistID, staffID))
	assert.Empty(t, repo.configs)
	assert.True(t, errors.Is(svc.Reset(context.Background(), artistID, staffID), ErrConfigNotFound))
}
