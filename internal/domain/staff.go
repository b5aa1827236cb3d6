package domain

import "github.com/m04kA/SMC-SalonService/pkg/types"

// Staff мастер салона
type Staff struct {
	ID       int64
	StoreID  int64
	Name     string
	IsActive bool
}

// StaffAvailabilityRule индивидуальный график мастера в один день недели
// На один день может быть несколько правил (разделенная смена)
type StaffAvailabilityRule struct {
	ID        int64
	StaffID   int64
	DayOfWeek int // 0 - воскресенье ... 6 - суббота
	StartTime types.TimeString
	EndTime   types.TimeString
}
