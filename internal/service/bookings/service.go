package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	studioRepo  StudioRepository
	notifier    Notifier
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		studioRepo:  studioRepo,
		notifier:    notifier,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование может клиент-владелец или сотрудник студии.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking, s.location), nil
}

// GetClientBookings получает историю бронирований клиента. Клиент видит только свои записи.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d by user=%d, status=%v",
		req.ClientID, req.UserID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: user=%d cannot read bookings of client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings, s.location), nil
}

// GetArtistBookings получает бронирования мастера с фильтрацией по периоду и статусу.
// Доступно только сотрудникам студии мастера.
func (s *Service) GetArtistBookings(ctx context.Context, req *models.GetArtistBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetArtistBookings: fetching bookings for artist=%d, user=%d", req.ArtistID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	artist, err := s.studioRepo.GetArtist(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrArtistNotFound) {
			s.logger.Warn("GetArtistBookings: artist id=%d not found", req.ArtistID)
			return nil, ErrArtistNotFound
		}
		s.logger.Error("GetArtistBookings: failed to get artist id=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: GetArtistBookings - failed to get artist: %v", ErrInternal, err)
	}

	if err := s.checkStaffAccess(ctx, artist.StudioID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetArtistBookings: invalid filter for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetArtistBookings: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: GetArtistBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetArtistBookings: fetched %d bookings for artist=%d", len(bookings), req.ArtistID)
	return models.FromDomainBookingList(bookings, s.location), nil
}

// Cancel отменяет бронирование. Отменить может клиент-владелец или сотрудник студии;
// отменяются только бронирования в статусах pending и confirmed. Отменённое время сразу освобождается.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrCannotCancel):
			// статус изменился параллельно
			s.logger.Warn("Cancel: booking id=%d changed status concurrently", bookingID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	now := time.Now()
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = req.CancellationReason
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	s.notifier.BookingCancelled(ctx, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(booking, s.location), nil
}

// UpdateStatus обновляет статус бронирования. Доступно только сотрудникам студии.
// Для отмены используется Cancel, отменённое бронирование не восстанавливается.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if newStatus == domain.StatusCancelled {
		return fmt.Errorf("%w: use cancel to cancel a booking", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkStaffAccess(ctx, booking.StudioID, req.UserID); err != nil {
		return err
	}

	if booking.IsCancelled() {
		s.logger.Warn("UpdateStatus: booking id=%d is cancelled", bookingID)
		return fmt.Errorf("%w: booking is cancelled", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess владелец бронирования или сотрудник студии
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.ClientID == userID {
		return nil
	}
	return s.checkStaffAccess(ctx, booking.StudioID, userID)
}

// checkStaffAccess проверяет, что пользователь работает в студии
func (s *Service) checkStaffAccess(ctx context.Context, studioID int64, userID int64) error {
	ok, err := s.studioRepo.IsStaff(ctx, studioID, userID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to check staff for studio=%d: %v", studioID, err)
		return fmt.Errorf("%w: checkStaffAccess - %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("checkStaffAccess: user=%d is not staff of studio=%d", userID, studioID)
		return ErrAccessDenied
	}
	return nil
}
