package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	userClient "github.com/m04kA/InkStudio-BookingService/internal/integrations/userservice"
	"github.com/m04kA/InkStudio-BookingService/pkg/ptr"
	"github.com/m04kA/InkStudio-BookingService/pkg/txmanager"
)

const retryBaseDelay = 25 * time.Millisecond

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	artistRepo       ArtistRepository
	userClient       UserServiceClient
	engine           Engine
	txManager        TransactionManager
	notifier         Notifier
	metrics          Metrics
	location         *time.Location
	conflictRetries  uint64
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// userClient может быть nil: тогда клиент не проверяется.
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	artistRepo ArtistRepository,
	userClient UserServiceClient,
	engine Engine,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	conflictRetries int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if conflictRetries < 0 {
		conflictRetries = 0
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		artistRepo:       artistRepo,
		userClient:       userClient,
		engine:           engine,
		txManager:        txManager,
		notifier:         notifier,
		metrics:          metrics,
		location:         location,
		conflictRetries:  uint64(conflictRetries),
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка выполняются в одной сериализуемой транзакции: побеждает последняя проверка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, artist=%d, date=%s, time=%s, duration=%d",
		req.ClientID, req.ArtistID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	// 2. Время начала в часовом поясе студии, прошедшее время не бронируется
	day, start, err := startOf(req, uc.location)
	if err != nil {
		return nil, err
	}
	if start.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start %s is in the past", start.Format(time.RFC3339))
		return nil, ErrInvalidDate
	}

	// 3. Мастер
	artist, err := uc.artistRepo.GetArtist(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrArtistNotFound) {
			uc.logger.Warn("CreateBooking: artist id=%d not found", req.ArtistID)
			return nil, ErrArtistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get artist id=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: failed to get artist: %v", ErrInternal, err)
	}
	if !artist.IsActive {
		uc.logger.Warn("CreateBooking: artist id=%d is inactive", req.ArtistID)
		return nil, ErrArtistNotFound
	}

	// 4. Клиент (недоступность UserService запись не блокирует)
	if err := uc.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	// 5. Расписание мастера
	config := domain.AvailabilityConfig{ArtistID: req.ArtistID}
	stored, err := uc.availabilityRepo.Get(ctx, req.ArtistID)
	switch {
	case err == nil:
		config = *stored
	case errors.Is(err, availabilityRepo.ErrConfigNotFound):
		uc.logger.Info("CreateBooking: using default availability for artist=%d", req.ArtistID)
	default:
		uc.logger.Error("CreateBooking: failed to get availability for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		StudioID:        artist.StudioID,
		ArtistID:        req.ArtistID,
		ClientID:        req.ClientID,
		StartTime:       start,
		EndTime:         ptr.Ptr(start.Add(time.Duration(duration) * time.Minute)),
		DurationMinutes: ptr.Ptr(duration),
		Status:          domain.StatusPending,
		ServiceName:     req.ServiceName,
		Notes:           req.Notes,
	}

	// 6. Транзакция с повтором при конфликте сериализации
	var result *domain.Booking
	backoff := retry.WithMaxRetries(uc.conflictRetries, retry.NewExponential(retryBaseDelay))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		created, err := uc.reserve(ctx, day, config, duration, req, booking)
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.metrics.ObserveBookingConflict("serialization")
			uc.logger.Warn("CreateBooking: serialization conflict for artist=%d, retrying", req.ArtistID)
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.ObserveBookingConflict("slot_taken")
			return nil, ErrSlotNotAvailable
		case errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("CreateBooking: retries exhausted for artist=%d: %v", req.ArtistID, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.ObserveBookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 7. Уведомление (ошибки публикации не влияют на результат)
	uc.notifier.BookingCreated(ctx, result)

	return toResponse(result), nil
}

// reserve повторно считает слоты по заблокированным бронированиям дня и вставляет запись
func (uc *UseCase) reserve(
	ctx context.Context,
	day time.Time,
	config domain.AvailabilityConfig,
	duration int,
	req *Request,
	booking *domain.Booking,
) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Бронирования мастера на день с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListForArtistOnDate(txCtx, req.ArtistID, day)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.2. Последняя проверка
		result := uc.engine.Compute(day, config, bookings, duration)
		if !result.Contains(req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available for artist=%d (blocked=%q)",
				req.StartTime, day.Format(domain.DateFormat), req.ArtistID, result.Blocked)
			return ErrSlotNotAvailable
		}

		// 6.3. Вставка; копия, чтобы повтор начинался с чистого значения
		b := *booking
		created, err = uc.bookingRepo.Create(txCtx, &b)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return nil
	})

	return created, err
}

func (uc *UseCase) checkClient(ctx context.Context, clientID int64) error {
	if uc.userClient == nil {
		return nil
	}

	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, clientID)
	if err != nil {
		switch {
		case errors.Is(err, userClient.ErrUserNotFound):
			uc.logger.Warn("CreateBooking: client id=%d not found", clientID)
			return ErrClientNotFound
		case errors.Is(err, userClient.ErrServiceDegraded):
			uc.logger.Warn("CreateBooking: skipping client check for id=%d: %v", clientID, err)
			return nil
		default:
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
	}

	if user.IsBlocked {
		uc.logger.Warn("CreateBooking: client id=%d is blocked", clientID)
		return ErrClientBlocked
	}
	return nil
}

func toResponse(b *domain.Booking) *Response {
	start, end := b.Interval()
	return &Response{
		ID:              b.ID,
		StudioID:        b.StudioID,
		ArtistID:        b.ArtistID,
		ClientID:        b.ClientID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(b.Duration() / time.Minute),
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
