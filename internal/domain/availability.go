package domain

import (
	"time"

	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// AvailabilityConfig рабочее расписание мастера.
// Nil/пустые поля означают "использовать значение по умолчанию".
type AvailabilityConfig struct {
	ArtistID      int64
	StudioID      int64
	WorkStart     *types.TimeString
	WorkEnd       *types.TimeString
	DaysOff       []int    // 0=воскресенье..6=суббота; nil = по умолчанию
	ExplicitSlots []string // если не пусто - единственные кандидаты на начало сеанса
	UpdatedAt     time.Time
}

// DefaultAvailabilityConfig возвращает расписание по умолчанию: 10:00-19:00, выходные вс и пн
func DefaultAvailabilityConfig() AvailabilityConfig {
	start := types.TimeString(DefaultWorkStart)
	end := types.TimeString(DefaultWorkEnd)
	return AvailabilityConfig{
		WorkStart: &start,
		WorkEnd:   &end,
		DaysOff:   []int{int(time.Sunday), int(time.Monday)},
	}
}

// Merge накладывает заданные поля stored поверх c и возвращает новое значение.
// Ни c, ни stored не изменяются.
func (c AvailabilityConfig) Merge(stored *AvailabilityConfig) AvailabilityConfig {
	merged := c.clone()
	if stored == nil {
		return merged
	}

	merged.ArtistID = stored.ArtistID
	merged.StudioID = stored.StudioID
	merged.UpdatedAt = stored.UpdatedAt

	if stored.WorkStart != nil && !stored.WorkStart.IsZero() {
		v := *stored.WorkStart
		merged.WorkStart = &v
	}
	if stored.WorkEnd != nil && !stored.WorkEnd.IsZero() {
		v := *stored.WorkEnd
		merged.WorkEnd = &v
	}
	if stored.DaysOff != nil {
		merged.DaysOff = append([]int{}, stored.DaysOff...)
	}
	if len(stored.ExplicitSlots) > 0 {
		merged.ExplicitSlots = append([]string{}, stored.ExplicitSlots...)
	}

	return merged
}

// IsDayOff возвращает true, если день недели входит в выходные
func (c AvailabilityConfig) IsDayOff(weekday time.Weekday) bool {
	for _, d := range c.DaysOff {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// HasExplicitSlots returns true if the artist uses a fixed list of start times
func (c AvailabilityConfig) HasExplicitSlots() bool {
	return len(c.ExplicitSlots) > 0
}

func (c AvailabilityConfig) clone() AvailabilityConfig {
	out := c
	if c.WorkStart != nil {
		v := *c.WorkStart
		out.WorkStart = &v
	}
	if c.WorkEnd != nil {
		v := *c.WorkEnd
		out.WorkEnd = &v
	}
	if c.DaysOff != nil {
		out.DaysOff = append([]int{}, c.DaysOff...)
	}
	if c.ExplicitSlots != nil {
		out.ExplicitSlots = append([]string{}, c.ExplicitSlots...)
	}
	return out
}

// Artist мастер студии
type Artist struct {
	ID       int64
	StudioID int64
	Name     string
	IsActive bool
}
