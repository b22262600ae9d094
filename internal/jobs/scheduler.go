// Package jobs фоновые задачи сервиса по расписанию (robfig/cron)
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrInvalidSchedule некорректное cron-выражение
	ErrInvalidSchedule = errors.New("jobs: invalid schedule")
)

const jobTimeout = time.Minute

// BookingRepository переводит прошедшие подтверждённые сеансы в completed
type BookingRepository interface {
	CompleteFinished(ctx context.Context, before time.Time) (int64, error)
}

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает задачи по cron-расписанию
type Scheduler struct {
	cron         *cron.Cron
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewScheduler регистрирует задачи. Пустое расписание отключает задачу.
func NewScheduler(bookingRepo BookingRepository, completeFinishedSchedule string, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:         cron.New(),
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}

	if completeFinishedSchedule != "" {
		if _, err := s.cron.AddFunc(completeFinishedSchedule, s.runCompleteFinished); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, completeFinishedSchedule, err)
		}
		logger.Info("Jobs: complete_finished scheduled (%s)", completeFinishedSchedule)
	}

	return s, nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения выполняющихся задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Error("Jobs: stop timed out: %v", ctx.Err())
	}
}

func (s *Scheduler) runCompleteFinished() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.CompleteFinished(ctx); err != nil {
		s.logger.Error("Jobs: complete_finished failed: %v", err)
	}
}

// CompleteFinished завершает подтверждённые сеансы, окончившиеся к текущему моменту
func (s *Scheduler) CompleteFinished(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	n, err := s.bookingRepo.CompleteFinished(ctx, now)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.logger.Info("Jobs: completed %d finished bookings (before %s)", n, now.Format(time.RFC3339))
	}
	return n, nil
}
