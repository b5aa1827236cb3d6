// Package availability вычисляет свободные слоты записи: рабочие окна мастера,
// занятые интервалы и кандидатов на начало записи.
//
// Все функции пакета чистые: текущее время и часовой пояс передаются явно.
package availability

import (
	"sort"
	"time"
)

// Interval полуинтервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет строгое пересечение: граничащие интервалы не пересекаются
func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// Contains проверяет, что [start, end) целиком лежит внутри интервала
func (i Interval) Contains(start, end time.Time) bool {
	return !start.Before(i.Start) && !end.After(i.End)
}

// OverlapsAny проверяет пересечение [start, end) хотя бы с одним интервалом
func OverlapsAny(start, end time.Time, intervals []Interval) bool {
	for _, i := range intervals {
		if i.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// MergeIntervals сортирует интервалы и склеивает пересекающиеся и граничащие
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start.Before(sorted[b].Start)
	})

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !cur.Start.After(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}

	return merged
}
