package get_availability_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// UseCase календарь доступности мастера на несколько дней
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	artistRepo       ArtistRepository
	engine           Engine
	metrics          Metrics
	location         *time.Location
	concurrency      int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает use case. concurrency ограничивает число дней, считаемых параллельно.
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	artistRepo ArtistRepository,
	engine Engine,
	metrics Metrics,
	location *time.Location,
	concurrency int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		artistRepo:       artistRepo,
		engine:           engine,
		metrics:          metrics,
		location:         location,
		concurrency:      concurrency,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute считает слоты на каждый день периода. Прошедшие дни возвращаются пустыми.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailabilityCalendar: artist=%d, from=%s, to=%s, duration=%d",
		req.ArtistID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailabilityCalendar: validation failed: %v", err)
		return nil, err
	}

	days, err := dayRange(req.From, req.To, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailabilityCalendar: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	// 2. Мастер и расписание загружаются один раз на весь период
	artist, err := uc.artistRepo.GetArtist(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrArtistNotFound) {
			return nil, ErrArtistNotFound
		}
		uc.logger.Error("GetAvailabilityCalendar: failed to get artist id=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: failed to get artist: %v", ErrInternal, err)
	}
	if !artist.IsActive {
		return nil, ErrArtistNotFound
	}

	config := domain.AvailabilityConfig{ArtistID: req.ArtistID}
	stored, err := uc.availabilityRepo.Get(ctx, req.ArtistID)
	switch {
	case err == nil:
		config = *stored
	case errors.Is(err, availabilityRepo.ErrConfigNotFound):
	default:
		uc.logger.Error("GetAvailabilityCalendar: failed to get availability for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 3. Дни считаются параллельно; каждый пишет только в свою ячейку
	now := uc.timeProvider.Now().In(uc.location)
	today := truncateDay(now, uc.location)
	result := make([]Day, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, day := range days {
		result[i] = Day{Date: day, Slots: []types.TimeString{}}
		if day.Before(today) {
			continue
		}

		g.Go(func() error {
			bookings, err := uc.bookingRepo.ListForArtistOnDate(gctx, req.ArtistID, day)
			if err != nil {
				return fmt.Errorf("%w: failed to get bookings for %s: %v", ErrInternal, day.Format(domain.DateFormat), err)
			}

			res := uc.engine.Compute(day, config, bookings, duration)
			slots := res.Slots
			if day.Equal(today) {
				slots = dropStarted(slots, day, now)
			}

			uc.metrics.ObserveAvailability(res.Outcome(), len(slots))
			result[i] = Day{Date: day, Blocked: res.Blocked, Slots: slots}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailabilityCalendar: artist=%d: %v", req.ArtistID, err)
		return nil, err
	}

	uc.logger.Info("GetAvailabilityCalendar: artist=%d, days=%d", req.ArtistID, len(result))

	return &Response{
		ArtistID:        req.ArtistID,
		DurationMinutes: duration,
		Days:            result,
	}, nil
}

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
