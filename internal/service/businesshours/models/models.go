package models

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модели

// DayHoursRequest часы работы в один день недели
type DayHoursRequest struct {
	DayOfWeek int     `json:"dayOfWeek"`           // 0 - воскресенье ... 6 - суббота
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"; не нужен для выходного
	CloseTime *string `json:"closeTime,omitempty"` // "18:00" или "24:00"
	IsClosed  bool    `json:"isClosed"`
}

// ReplaceBusinessHoursRequest запрос на замену недельного расписания салона
// Дни, не попавшие в запрос, считаются выходными
type ReplaceBusinessHoursRequest struct {
	UserID int64             `json:"userId"`
	Days   []DayHoursRequest `json:"days"`
}

// Response модели

// DayHoursResponse часы работы в один день недели
type DayHoursResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsClosed  bool   `json:"isClosed"`
}

// BusinessHoursResponse недельное расписание салона
type BusinessHoursResponse struct {
	StoreID      int64              `json:"storeId"`
	Timezone     string             `json:"timezone"`
	TimezoneAbbr string             `json:"timezoneAbbr,omitempty"` // текущее сокращение, например "EST"
	Days         []DayHoursResponse `json:"days"`
}

// FromDomainBusinessHours конвертирует domain модели в DTO
func FromDomainBusinessHours(store *domain.Store, abbr string, hours []*domain.BusinessHours) *BusinessHoursResponse {
	resp := &BusinessHoursResponse{
		StoreID:      store.ID,
		Timezone:     store.Timezone,
		TimezoneAbbr: abbr,
		Days:         make([]DayHoursResponse, 0, len(hours)),
	}

	for _, h := range hours {
		day := DayHoursResponse{DayOfWeek: h.DayOfWeek, IsClosed: h.IsClosed}
		if !h.IsClosed {
			day.OpenTime = h.OpenTime.String()
			day.CloseTime = h.CloseTime.String()
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}

// ToDomainBusinessHours конвертирует день запроса в domain модель (без валидации)
func (d DayHoursRequest) ToDomainBusinessHours(storeID int64, openTime, closeTime types.TimeString) *domain.BusinessHours {
	return &domain.BusinessHours{
		StoreID:   storeID,
		DayOfWeek: d.DayOfWeek,
		OpenTime:  openTime,
		CloseTime: closeTime,
		IsClosed:  d.IsClosed,
	}
}
