// Package availability вычисляет, какие времена начала сеанса доступны мастеру в конкретный день.
//
// Вычисление чистое: без I/O, без общего изменяемого состояния, входные данные не изменяются.
// Один Engine можно вызывать параллельно из нескольких горутин.
package availability

import (
	"sort"
	"time"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

// BlockReason причина, по которой день закрыт целиком
type BlockReason string

const (
	BlockNone    BlockReason = ""
	BlockFullDay BlockReason = "FULL_DAY"
	BlockDayOff  BlockReason = "DAY_OFF"
)

// Rules бизнес-константы движка
type Rules struct {
	FullDayThresholdMinutes      int
	PostAppointmentBufferMinutes int
	SlotStepMinutes              int
}

// DefaultRules возвращает правила по умолчанию (240/60/30)
func DefaultRules() Rules {
	return Rules{
		FullDayThresholdMinutes:      domain.FullDayThresholdMinutes,
		PostAppointmentBufferMinutes: domain.PostAppointmentBufferMinutes,
		SlotStepMinutes:              domain.SlotStepMinutes,
	}
}

// Result результат расчёта на один день
type Result struct {
	Blocked BlockReason
	Slots   []types.TimeString
}

// IsBlocked день закрыт целиком
func (r Result) IsBlocked() bool {
	return r.Blocked != BlockNone
}

// Contains проверяет, что время начала есть среди доступных слотов
func (r Result) Contains(start types.TimeString) bool {
	want, err := start.Minutes()
	if err != nil {
		return false
	}
	for _, s := range r.Slots {
		if m, err := s.Minutes(); err == nil && m == want {
			return true
		}
	}
	return false
}

// Outcome метка для метрик: open, full_day, day_off
func (r Result) Outcome() string {
	switch r.Blocked {
	case BlockFullDay:
		return "full_day"
	case BlockDayOff:
		return "day_off"
	default:
		return "open"
	}
}

// Engine движок расчёта доступных слотов
type Engine struct {
	rules Rules
}

// NewEngine создает движок. Неположительные порог и шаг, а также отрицательный буфер
// заменяются значениями по умолчанию; нулевой буфер допустим.
func NewEngine(rules Rules) *Engine {
	def := DefaultRules()
	if rules.FullDayThresholdMinutes <= 0 {
		rules.FullDayThresholdMinutes = def.FullDayThresholdMinutes
	}
	if rules.PostAppointmentBufferMinutes < 0 {
		rules.PostAppointmentBufferMinutes = def.PostAppointmentBufferMinutes
	}
	if rules.SlotStepMinutes <= 0 {
		rules.SlotStepMinutes = def.SlotStepMinutes
	}
	return &Engine{rules: rules}
}

// Rules возвращает действующие правила
func (e *Engine) Rules() Rules {
	return e.rules
}

var defaultEngine = NewEngine(DefaultRules())

// ComputeAvailableSlots считает слоты с правилами по умолчанию
func ComputeAvailableSlots(
	date time.Time,
	config domain.AvailabilityConfig,
	dayBookings []*domain.Booking,
	serviceDurationMinutes int,
) Result {
	return defaultEngine.Compute(date, config, dayBookings, serviceDurationMinutes)
}

// Compute возвращает доступные времена начала сеанса длительностью serviceDurationMinutes.
//
// dayBookings - бронирования мастера, начинающиеся в этот день. Отменённые игнорируются.
// Незаданные поля config заменяются значениями по умолчанию.
//
// Порядок проверок:
//  1. любой сеанс длиной от FullDayThresholdMinutes закрывает день (BlockFullDay);
//  2. выходной день недели (BlockDayOff);
//  3. кандидаты: явный список слотов мастера или сетка с шагом SlotStepMinutes в [WorkStart, WorkEnd);
//  4. кандидат остается, если сеанс заканчивается не позже WorkEnd и не пересекается
//     ни с одним бронированием, продлённым на PostAppointmentBufferMinutes после окончания.
func (e *Engine) Compute(
	date time.Time,
	config domain.AvailabilityConfig,
	dayBookings []*domain.Booking,
	serviceDurationMinutes int,
) Result {
	if serviceDurationMinutes <= 0 {
		serviceDurationMinutes = domain.DefaultServiceDurationMinutes
	}

	cfg := domain.DefaultAvailabilityConfig().Merge(&config)
	busy := busyIntervals(dayBookings)

	// 1. Длинный сеанс занимает день целиком, независимо от фактических границ
	threshold := time.Duration(e.rules.FullDayThresholdMinutes) * time.Minute
	for _, b := range busy {
		if b.end.Sub(b.start) >= threshold {
			return Result{Blocked: BlockFullDay, Slots: []types.TimeString{}}
		}
	}

	// 2. Выходной
	if cfg.IsDayOff(date.Weekday()) {
		return Result{Blocked: BlockDayOff, Slots: []types.TimeString{}}
	}

	workStart := minutesOrDefault(cfg.WorkStart, domain.DefaultWorkStart)
	workEnd := minutesOrDefault(cfg.WorkEnd, domain.DefaultWorkEnd)

	// 3. Кандидаты
	// Нераспознанные явные слоты считаются отсутствующими; пустой после разбора список -> сетка
	var candidates []int
	if cfg.HasExplicitSlots() {
		candidates = explicitCandidates(cfg.ExplicitSlots)
	}
	if len(candidates) == 0 {
		candidates = gridCandidates(workStart, workEnd, e.rules.SlotStepMinutes)
	}

	// 4. Фильтр допустимости
	buffer := time.Duration(e.rules.PostAppointmentBufferMinutes) * time.Minute
	duration := time.Duration(serviceDurationMinutes) * time.Minute
	y, mon, d := date.Date()

	slots := make([]types.TimeString, 0, len(candidates))
	for _, c := range candidates {
		if c+serviceDurationMinutes > workEnd {
			continue
		}

		start := time.Date(y, mon, d, 0, c, 0, 0, date.Location())
		end := start.Add(duration)
		if conflicts(start, end, busy, buffer) {
			continue
		}

		slots = append(slots, types.FromMinutes(c))
	}

	return Result{Blocked: BlockNone, Slots: slots}
}

type interval struct {
	start time.Time
	end   time.Time
}

// busyIntervals нормализует бронирования в интервалы [start, end)
func busyIntervals(bookings []*domain.Booking) []interval {
	out := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.OccupiesTime() {
			continue
		}
		start, end := b.Interval()
		out = append(out, interval{start: start, end: end})
	}
	return out
}

// conflicts: [start, end) пересекается с [b.start, b.end+buffer) хотя бы для одного b
func conflicts(start, end time.Time, busy []interval, buffer time.Duration) bool {
	for _, b := range busy {
		if start.Before(b.end.Add(buffer)) && end.After(b.start) {
			return true
		}
	}
	return false
}

// gridCandidates генерирует времена от start до end (не включая) с шагом step
func gridCandidates(start, end, step int) []int {
	var out []int
	for m := start; m < end; m += step {
		out = append(out, m)
	}
	return out
}

// explicitCandidates разбирает явный список: некорректные значения отбрасываются,
// дубликаты схлопываются, результат по возрастанию
func explicitCandidates(raw []string) []int {
	seen := make(map[int]struct{}, len(raw))
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			continue
		}
		m, _ := ts.Minutes()
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

func minutesOrDefault(ts *types.TimeString, def string) int {
	if ts != nil {
		if m, err := ts.Minutes(); err == nil {
			return m
		}
	}
	m, _ := types.TimeString(def).Minutes()
	return m
}
