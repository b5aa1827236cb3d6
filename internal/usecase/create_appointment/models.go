package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
// StartsAt - момент начала слота в том виде, в каком его вернул поиск свободного времени
type Request struct {
	UserID    int64     // ID клиента
	StoreID   int64     // ID салона
	ServiceID int64     // ID услуги
	StaffID   int64     // ID мастера
	StartsAt  time.Time // Начало записи
	AddonIDs  []int64   // Дополнения к услуге
	Notes     *string   // Заметки клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	StoreID         int64
	StaffID         int64
	StaffName       string
	CustomerID      int64
	ServiceID       int64
	ServiceName     string
	StartsAt        time.Time        // UTC
	LocalDate       time.Time        // дата в часовом поясе салона
	LocalStartTime  types.TimeString // время начала в часовом поясе салона
	TimezoneAbbr    string
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
