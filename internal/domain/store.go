package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Store салон (точка обслуживания)
type Store struct {
	ID       int64
	Slug     string // используется в публичной ссылке на запись
	Name     string
	Timezone string // имя часового пояса IANA, например "America/New_York"
	IsActive bool

	// Шаг календаря в минутах; NULL - используется DefaultSlotGranularityMinutes
	CalendarIntervalMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTimezone возвращает true, если у салона настроен часовой пояс
func (s *Store) HasTimezone() bool {
	return strings.TrimSpace(s.Timezone) != ""
}

// SlotGranularity возвращает шаг генерации слотов в минутах
func (s *Store) SlotGranularity() int {
	if s.CalendarIntervalMinutes == nil {
		return DefaultSlotGranularityMinutes
	}
	if v := *s.CalendarIntervalMinutes; v >= MinSlotGranularityMinutes && v <= MaxSlotGranularityMinutes {
		return v
	}
	return DefaultSlotGranularityMinutes
}

// BusinessHours часы работы салона в один день недели
// На пару (StoreID, DayOfWeek) допускается не более одной записи
type BusinessHours struct {
	ID        int64
	StoreID   int64
	DayOfWeek int // 0 - воскресенье ... 6 - суббота, как time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
}

// Weekday возвращает день недели как time.Weekday
func (h *BusinessHours) Weekday() time.Weekday {
	return time.Weekday(h.DayOfWeek)
}

// OpenWindow возвращает интервал работы в минутах от начала суток
// ok == false, если салон закрыт или время задано некорректно
func (h *BusinessHours) OpenWindow() (openMinute, closeMinute int, ok bool) {
	if h.IsClosed {
		return 0, 0, false
	}

	openMinute, err := h.OpenTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	closeMinute, err = h.CloseTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if openMinute >= closeMinute {
		return 0, 0, false
	}

	return openMinute, closeMinute, true
}

// IsValidDayOfWeek проверяет, что день недели в диапазоне 0-6
func IsValidDayOfWeek(day int) bool {
	return day >= int(time.Sunday) && day <= int(time.Saturday)
}
