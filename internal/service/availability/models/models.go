package models

import (
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

// UpdateAvailabilityRequest полная замена расписания мастера.
// Отсутствующее поле означает значение по умолчанию; "daysOff": [] означает работу без выходных.
type UpdateAvailabilityRequest struct {
	UserID        int64    `json:"-"`
	WorkStart     *string  `json:"workStart,omitempty"`     // "10:00"
	WorkEnd       *string  `json:"workEnd,omitempty"`       // "19:00"
	DaysOff       []int    `json:"daysOff,omitempty"`       // 0=вс..6=сб
	ExplicitSlots []string `json:"explicitSlots,omitempty"` // фиксированные времена начала
}

// AvailabilityResponse действующее расписание мастера (с подставленными значениями по умолчанию)
type AvailabilityResponse struct {
	ArtistID      int64      `json:"artistId"`
	StudioID      int64      `json:"studioId"`
	WorkStart     string     `json:"workStart"`
	WorkEnd       string     `json:"workEnd"`
	DaysOff       []int      `json:"daysOff"`
	ExplicitSlots []string   `json:"explicitSlots"`
	IsDefault     bool       `json:"isDefault"` // расписание не настроено
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig накладывает stored на расписание по умолчанию. stored может быть nil.
func FromDomainConfig(artist *domain.Artist, stored *domain.AvailabilityConfig) *AvailabilityResponse {
	effective := domain.DefaultAvailabilityConfig().Merge(stored)

	resp := &AvailabilityResponse{
		ArtistID:      artist.ID,
		StudioID:      artist.StudioID,
		WorkStart:     effective.WorkStart.String(),
		WorkEnd:       effective.WorkEnd.String(),
		DaysOff:       effective.DaysOff,
		ExplicitSlots: effective.ExplicitSlots,
		IsDefault:     stored == nil,
	}
	if resp.DaysOff == nil {
		resp.DaysOff = []int{}
	}
	if resp.ExplicitSlots == nil {
		resp.ExplicitSlots = []string{}
	}
	if stored != nil && !stored.UpdatedAt.IsZero() {
		updatedAt := stored.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
