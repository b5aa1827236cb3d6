package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/tzconv"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	StoreID         int64     `json:"storeId"`
	StaffID         int64     `json:"staffId"`
	CustomerID      int64     `json:"customerId"`
	ServiceID       int64     `json:"serviceId"`
	StartsAt        time.Time `json:"startsAt"` // UTC
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	// Время в часовом поясе салона; пусто, если пояс не настроен
	LocalDate      string `json:"localDate,omitempty"`      // "2025-10-15"
	LocalStartTime string `json:"localStartTime,omitempty"` // "10:00"
	TimezoneAbbr   string `json:"timezoneAbbr,omitempty"`   // "EST"

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainAppointment конвертирует domain модель в DTO
// timezone - часовой пояс салона, может быть пустым
func FromDomainAppointment(a *domain.Appointment, timezone string) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		StoreID:            a.StoreID,
		StaffID:            a.StaffID,
		CustomerID:         a.CustomerID,
		ServiceID:          a.ServiceID,
		StartsAt:           a.Date.UTC(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if loc, err := tzconv.LoadLocation(timezone); err == nil && timezone != "" {
		local := a.Date.In(loc)
		resp.LocalDate = local.Format(domain.DateFormat)
		resp.LocalStartTime = types.NewTimeString(local).String()
		resp.TimezoneAbbr = tzconv.Abbr(timezone, a.Date)
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}
