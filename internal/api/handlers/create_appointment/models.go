package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

var errInvalidStartsAt = errors.New("startsAt must be RFC3339")

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StoreID   int64   `json:"storeId"`
	ServiceID int64   `json:"serviceId"`
	StaffID   int64   `json:"staffId"`
	StartsAt  string  `json:"startsAt"` // значение time из ответа /availability, например "2025-10-15T14:00:00Z"
	AddonIDs  []int64 `json:"addonIds,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	StoreID         int64   `json:"storeId"`
	StaffID         int64   `json:"staffId"`
	StaffName       string  `json:"staffName"`
	CustomerID      int64   `json:"customerId"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	StartsAt        string  `json:"startsAt"` // UTC
	LocalDate       string  `json:"localDate"`
	LocalStartTime  string  `json:"localStartTime"`
	TimezoneAbbr    string  `json:"timezoneAbbr,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, errInvalidStartsAt
	}

	return &createAppointment.Request{
		UserID:    userID,
		StoreID:   r.StoreID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		StartsAt:  startsAt.UTC(),
		AddonIDs:  r.AddonIDs,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		StoreID:         resp.StoreID,
		StaffID:         resp.StaffID,
		StaffName:       resp.StaffName,
		CustomerID:      resp.CustomerID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		StartsAt:        resp.StartsAt.UTC().Format(time.RFC3339),
		LocalDate:       resp.LocalDate.Format(domain.DateFormat),
		LocalStartTime:  resp.LocalStartTime.String(),
		TimezoneAbbr:    resp.TimezoneAbbr,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
