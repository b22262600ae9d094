package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/internal/service/availability/models"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// toDomainConfig проверяет запрос и строит расписание для сохранения.
// Движок терпит некорректные явные слоты при чтении, но записать их нельзя.
func toDomainConfig(artist *domain.Artist, req *models.UpdateAvailabilityRequest) (*domain.AvailabilityConfig, error) {
	cfg := &domain.AvailabilityConfig{
		ArtistID: artist.ID,
		StudioID: artist.StudioID,
	}

	var err error
	if cfg.WorkStart, err = parseOptionalTime("workStart", req.WorkStart); err != nil {
		return nil, err
	}
	if cfg.WorkEnd, err = parseOptionalTime("workEnd", req.WorkEnd); err != nil {
		return nil, err
	}

	effective := domain.DefaultAvailabilityConfig().Merge(cfg)
	start, _ := effective.WorkStart.Minutes()
	end, _ := effective.WorkEnd.Minutes()
	if start >= end {
		return nil, fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
	}

	if req.DaysOff != nil {
		seen := make(map[int]struct{}, len(req.DaysOff))
		days := make([]int, 0, len(req.DaysOff))
		for _, d := range req.DaysOff {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("%w: daysOff values must be in 0..6, got %d", ErrInvalidInput, d)
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			days = append(days, d)
		}
		sort.Ints(days)
		cfg.DaysOff = days
	}

	if len(req.ExplicitSlots) > domain.MaxExplicitSlots {
		return nil, fmt.Errorf("%w: at most %d explicit slots allowed", ErrInvalidInput, domain.MaxExplicitSlots)
	}
	if len(req.ExplicitSlots) > 0 {
		seen := make(map[types.TimeString]struct{}, len(req.ExplicitSlots))
		slots := make([]string, 0, len(req.ExplicitSlots))
		for _, raw := range req.ExplicitSlots {
			ts, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: explicit slot %q: %v", ErrInvalidInput, raw, err)
			}
			if _, dup := seen[ts]; dup {
				continue
			}
			seen[ts] = struct{}{}
			slots = append(slots, ts.String())
		}
		sort.Strings(slots)
		cfg.ExplicitSlots = slots
	}

	return cfg, nil
}

func parseOptionalTime(field string, raw *string) (*types.TimeString, error) {
	if raw == nil {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return &ts, nil
}
