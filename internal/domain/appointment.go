package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusStarted   AppointmentStatus = "started"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// Appointment запись клиента к мастеру
type Appointment struct {
	ID         int64
	StoreID    int64
	StaffID    int64
	CustomerID int64
	ServiceID  int64

	// Момент начала, всегда в UTC
	Date time.Time
	// Длительность с учетом дополнений
	DurationMinutes int
	Status          AppointmentStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End возвращает момент окончания записи
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// OccupiesTime возвращает true, если запись занимает время мастера
func (a *Appointment) OccupiesTime() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled возвращает true, если запись еще можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// ParseAppointmentStatus проверяет строковый статус
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case StatusPending, StatusConfirmed, StatusStarted, StatusCompleted, StatusCancelled, StatusNoShow:
		return status, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}
