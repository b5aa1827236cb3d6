package availability

import (
	"sort"
	"time"
)

// GenerateSlots возвращает моменты начала, в которые помещается запись длительностью durationMinutes
//
// Кандидаты берутся от начала каждого окна с шагом granularityMinutes. Кандидат подходит, если
// [кандидат, кандидат + длительность) целиком внутри окна и не пересекается ни с одним занятым
// интервалом. Кандидаты раньше now отбрасываются. Шаг делается по абсолютному времени, поэтому
// в день перевода часов слот никогда не попадает в несуществующий локальный час.
func GenerateSlots(windows []Interval, busy []Interval, durationMinutes, granularityMinutes int, now time.Time) []time.Time {
	slots := make([]time.Time, 0)
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return slots
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	ordered := make([]Interval, len(windows))
	copy(ordered, windows)
	sort.Slice(ordered, func(a, b int) bool {
		return ordered[a].Start.Before(ordered[b].Start)
	})

	for _, w := range ordered {
		for candidate := w.Start; !candidate.Add(duration).After(w.End); candidate = candidate.Add(step) {
			if candidate.Before(now) {
				continue
			}
			if OverlapsAny(candidate, candidate.Add(duration), busy) {
				continue
			}
			slots = append(slots, candidate)
		}
	}

	return slots
}

// FitsWindows проверяет, что запись [start, start + длительность) целиком внутри одного из окон
func FitsWindows(windows []Interval, start time.Time, durationMinutes int) bool {
	if durationMinutes <= 0 {
		return false
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, w := range windows {
		if w.Contains(start, end) {
			return true
		}
	}
	return false
}
