package domain

// Значения по умолчанию
const (
	DefaultSlotGranularityMinutes = 15
)

// Константы бизнес-валидации
const (
	MinSlotGranularityMinutes     = 5
	MaxSlotGranularityMinutes     = 240
	MaxAppointmentDurationMinutes = 12 * 60
	MaxNotesLength                = 500
	MaxCancellationReasonLength   = 500
	MaxAddonsPerAppointment       = 20
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BusyStatuses статусы записей, занимающих время мастера
// Отмененная запись время не занимает, неявка занимает (мастер ждал клиента)
var BusyStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusStarted,
	StatusCompleted,
	StatusNoShow,
}
