package notificationservice

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AppointmentConfirmation подтверждение записи, которое сервис уведомлений отправляет клиенту (SMS)
type AppointmentConfirmation struct {
	AppointmentID   int64     `json:"appointment_id"`
	CustomerID      int64     `json:"customer_id"`
	StoreID         int64     `json:"store_id"`
	StoreName       string    `json:"store_name"`
	StaffName       string    `json:"staff_name"`
	ServiceName     string    `json:"service_name"`
	StartsAt        time.Time `json:"starts_at"`       // UTC
	LocalStartsAt   string    `json:"local_starts_at"` // "2006-01-02 15:04" во времени салона
	TimezoneAbbr    string    `json:"timezone_abbr"`   // например, "EST"
	DurationMinutes int       `json:"duration_minutes"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
