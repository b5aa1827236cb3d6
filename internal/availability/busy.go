package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/tzconv"
)

// CollectBusyIntervals строит занятые интервалы мастера на календарную дату date
// Учитываются только записи, занимающие время, чья локальная дата начала совпадает с date.
// Пересекающиеся записи склеиваются, а не приводят к ошибке.
func CollectBusyIntervals(appointments []*domain.Appointment, date time.Time, loc *time.Location) []Interval {
	intervals := make([]Interval, 0, len(appointments))

	for _, a := range appointments {
		if a == nil || !a.OccupiesTime() || a.DurationMinutes <= 0 {
			continue
		}
		if !tzconv.ToLocalParts(a.Date, loc).SameDate(date) {
			continue
		}

		intervals = append(intervals, Interval{Start: a.Date.UTC(), End: a.End().UTC()})
	}

	return MergeIntervals(intervals)
}
