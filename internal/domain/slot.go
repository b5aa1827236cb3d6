package domain

import "time"

// TimeSlot свободное время начала записи у конкретного мастера
// Вычисляется на каждый запрос и нигде не хранится
type TimeSlot struct {
	Time      time.Time // момент начала в UTC
	StaffID   int64
	StaffName string
}
