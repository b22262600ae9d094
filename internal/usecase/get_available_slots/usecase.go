package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов мастера на день
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	artistRepo       ArtistRepository
	engine           Engine
	metrics          Metrics
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case. Даты запросов интерпретируются в location.
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	artistRepo ArtistRepository,
	engine Engine,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		artistRepo:       artistRepo,
		engine:           engine,
		metrics:          metrics,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: artist=%d, date=%s, duration=%d",
		req.ArtistID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	// 2. Дата в часовом поясе студии
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	now := uc.timeProvider.Now()

	if isDateInPast(day, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", day.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Мастер
	if err := uc.checkArtist(ctx, req.ArtistID); err != nil {
		return nil, err
	}

	// 4. Расписание мастера (при отсутствии - по умолчанию)
	config, err := uc.loadConfig(ctx, req.ArtistID)
	if err != nil {
		return nil, err
	}

	// 5. Бронирования мастера на этот день
	bookings, err := uc.bookingRepo.ListForArtistOnDate(ctx, req.ArtistID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Расчёт
	result := uc.engine.Compute(day, config, bookings, duration)

	// 7. Для сегодняшнего дня прошедшее время недоступно
	slots := result.Slots
	if isSameDay(day, now) {
		slots = dropStarted(slots, day, now)
	}

	uc.metrics.ObserveAvailability(result.Outcome(), len(slots))
	uc.logger.Info("GetAvailableSlots: artist=%d, date=%s, blocked=%q, slots=%d",
		req.ArtistID, day.Format(domain.DateFormat), result.Blocked, len(slots))

	return &Response{
		Date:            day,
		ArtistID:        req.ArtistID,
		DurationMinutes: duration,
		Blocked:         result.Blocked,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) checkArtist(ctx context.Context, artistID int64) error {
	artist, err := uc.artistRepo.GetArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrArtistNotFound) {
			uc.logger.Warn("GetAvailableSlots: artist id=%d not found", artistID)
			return ErrArtistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get artist id=%d: %v", artistID, err)
		return fmt.Errorf("%w: failed to get artist: %v", ErrInternal, err)
	}
	if !artist.IsActive {
		uc.logger.Warn("GetAvailableSlots: artist id=%d is inactive", artistID)
		return ErrArtistNotFound
	}
	return nil
}

func (uc *UseCase) loadConfig(ctx context.Context, artistID int64) (domain.AvailabilityConfig, error) {
	stored, err := uc.availabilityRepo.Get(ctx, artistID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrConfigNotFound) {
			uc.logger.Info("GetAvailableSlots: using default availability for artist=%d", artistID)
			return domain.AvailabilityConfig{ArtistID: artistID}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability for artist=%d: %v", artistID, err)
		return domain.AvailabilityConfig{}, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	return *stored, nil
}

// dropStarted убирает слоты, время начала которых уже прошло
func dropStarted(slots []types.TimeString, day, now time.Time) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		start, err := s.On(day)
		if err != nil || start.Before(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}
