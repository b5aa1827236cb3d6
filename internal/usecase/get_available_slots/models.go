package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Режимы подбора мастера (метка метрики)
const (
	ModeSpecificStaff = "specific_staff"
	ModeAnyStaff      = "any_staff"
)

// Request модель запроса на получение свободного времени
// Салон задается либо StoreID, либо StoreSlug (публичная страница записи)
type Request struct {
	UserID    int64 // ID пользователя (для логирования, не влияет на результат); 0 для публичного запроса
	StoreID   int64
	StoreSlug string
	ServiceID int64
	Date      time.Time // календарная дата в часовом поясе салона (используются только Y-M-D)

	DurationMinutes *int    // явная длительность; иначе длительность услуги + дополнения
	AddonIDs        []int64 // дополнения к услуге
	StaffID         *int64  // конкретный мастер; nil - любой мастер
}

// Response модель ответа со свободным временем
type Response struct {
	Date            time.Time
	StoreID         int64
	ServiceID       int64
	DurationMinutes int
	Timezone        string
	Slots           []domain.TimeSlot // отсортированы по времени, затем по staffID; никогда не nil
}
