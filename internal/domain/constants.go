package domain

// Бизнес-правила расчёта доступности
const (
	// FullDayThresholdMinutes сеанс такой длины и больше блокирует весь день
	FullDayThresholdMinutes = 240
	// PostAppointmentBufferMinutes перерыв после каждого сеанса (только после, не до)
	PostAppointmentBufferMinutes = 60
	// SlotStepMinutes шаг сетки кандидатов при отсутствии явного списка слотов
	SlotStepMinutes = 30
)

// Default configuration values
const (
	DefaultWorkStart              = "10:00"
	DefaultWorkEnd                = "19:00"
	DefaultServiceDurationMinutes = 60
	DefaultBookingDurationMinutes = 60
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 15
	MaxServiceDurationMinutes   = 720 // 12 hours
	MaxCalendarRangeDays        = 31
	MaxExplicitSlots            = 48
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
