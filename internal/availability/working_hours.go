package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/tzconv"
)

// LocalWindow рабочее окно в минутах от начала локальных суток, полуинтервал [Start, End)
type LocalWindow struct {
	Start int
	End   int
}

// ResolveWorkingWindows вычисляет рабочие окна мастера в день недели weekday
//
// Правила:
//   - нет записи часов работы салона на этот день или салон закрыт - окон нет;
//   - у мастера нет правил на этот день - мастер работает по часам салона;
//   - иначе каждое правило обрезается часами салона, правила вне часов салона отбрасываются,
//     пересекающиеся и граничащие правила объединяются.
func ResolveWorkingWindows(
	hours []*domain.BusinessHours,
	rules []*domain.StaffAvailabilityRule,
	weekday time.Weekday,
) []LocalWindow {
	storeDay := findBusinessHours(hours, weekday)
	if storeDay == nil {
		return nil
	}

	openMinute, closeMinute, ok := storeDay.OpenWindow()
	if !ok {
		return nil
	}

	dayRules := rulesForDay(rules, weekday)
	if len(dayRules) == 0 {
		return []LocalWindow{{Start: openMinute, End: closeMinute}}
	}

	clipped := make([]LocalWindow, 0, len(dayRules))
	for _, rule := range dayRules {
		start, err := rule.StartTime.Minutes()
		if err != nil {
			continue
		}
		end, err := rule.EndTime.Minutes()
		if err != nil {
			continue
		}

		start = max(start, openMinute)
		end = min(end, closeMinute)
		if start >= end {
			continue
		}

		clipped = append(clipped, LocalWindow{Start: start, End: end})
	}

	return mergeLocalWindows(clipped)
}

// ToIntervals переводит локальные окна календарной даты date в моменты времени
func ToIntervals(date time.Time, windows []LocalWindow, loc *time.Location) []Interval {
	intervals := make([]Interval, 0, len(windows))
	for _, w := range windows {
		start := tzconv.LocalDateTimeToUTC(date, w.Start, loc)
		end := tzconv.LocalDateTimeToUTC(date, w.End, loc)
		// Окно целиком внутри весеннего разрыва схлопывается
		if !start.Before(end) {
			continue
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals
}

func findBusinessHours(hours []*domain.BusinessHours, weekday time.Weekday) *domain.BusinessHours {
	for _, h := range hours {
		if h != nil && h.Weekday() == weekday {
			return h
		}
	}
	return nil
}

func rulesForDay(rules []*domain.StaffAvailabilityRule, weekday time.Weekday) []*domain.StaffAvailabilityRule {
	result := make([]*domain.StaffAvailabilityRule, 0)
	for _, r := range rules {
		if r != nil && time.Weekday(r.DayOfWeek) == weekday {
			result = append(result, r)
		}
	}
	return result
}

func mergeLocalWindows(windows []LocalWindow) []LocalWindow {
	if len(windows) == 0 {
		return nil
	}

	sort.Slice(windows, func(a, b int) bool {
		return windows[a].Start < windows[b].Start
	})

	merged := []LocalWindow{windows[0]}
	for _, cur := range windows[1:] {
		last := &merged[len(merged)-1]
		if cur.Start <= last.End {
			last.End = max(last.End, cur.End)
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}
