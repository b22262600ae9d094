package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/internal/service/availability/models"
)

// Service сервис для работы с рабочим расписанием мастеров
type Service struct {
	availabilityRepo AvailabilityRepository
	studioRepo       StudioRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	availabilityRepo AvailabilityRepository,
	studioRepo StudioRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		studioRepo:       studioRepo,
		logger:           logger,
	}
}

// Get возвращает действующее расписание мастера. Публичный метод.
func (s *Service) Get(ctx context.Context, artistID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for artist=%d", artistID)

	artist, err := s.getArtist(ctx, "Get", artistID)
	if err != nil {
		return nil, err
	}

	stored, err := s.availabilityRepo.Get(ctx, artistID)
	if err != nil {
		if !errors.Is(err, availabilityRepo.ErrConfigNotFound) {
			s.logger.Error("Get: repository error for artist=%d: %v", artistID, err)
			return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
		}
		stored = nil
	}

	return models.FromDomainConfig(artist, stored), nil
}

// Update заменяет расписание мастера. Доступно только сотрудникам студии мастера.
func (s *Service) Update(ctx context.Context, artistID int64, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: updating availability for artist=%d by user=%d", artistID, req.UserID)

	// 1. Мастер и права
	artist, err := s.getArtist(ctx, "Update", artistID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStaffAccess(ctx, artist.StudioID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидация
	cfg, err := toDomainConfig(artist, req)
	if err != nil {
		s.logger.Warn("Update: validation failed for artist=%d: %v", artistID, err)
		return nil, err
	}

	// 3. Сохранение (кеш сбрасывается в репозитории)
	saved, err := s.availabilityRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Update: repository error for artist=%d: %v", artistID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated availability for artist=%d", artistID)
	return models.FromDomainConfig(artist, saved), nil
}

// Reset удаляет расписание, мастер возвращается к расписанию по умолчанию.
// Доступно только сотрудникам студии мастера.
func (s *Service) Reset(ctx context.Context, artistID int64, userID int64) error {
	s.logger.Info("Reset: resetting availability for artist=%d by user=%d", artistID, userID)

	artist, err := s.getArtist(ctx, "Reset", artistID)
	if err != nil {
		return err
	}
	if err := s.checkStaffAccess(ctx, artist.StudioID, userID); err != nil {
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, artistID); err != nil {
		if errors.Is(err, availabilityRepo.ErrConfigNotFound) {
			return ErrConfigNotFound
		}
		s.logger.Error("Reset: repository error for artist=%d: %v", artistID, err)
		return fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getArtist(ctx context.Context, op string, artistID int64) (*domain.Artist, error) {
	artist, err := s.studioRepo.GetArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrArtistNotFound) {
			s.logger.Warn("%s: artist id=%d not found", op, artistID)
			return nil, ErrArtistNotFound
		}
		s.logger.Error("%s: failed to get artist id=%d: %v", op, artistID, err)
		return nil, fmt.Errorf("%w: %s - failed to get artist: %v", ErrInternal, op, err)
	}
	return artist, nil
}

func (s *Service) checkStaffAccess(ctx context.Context, studioID, userID int64) error {
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
