package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// StoreRepository интерфейс репозитория салонов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetBusinessHours(ctx context.Context, storeID int64) ([]*domain.BusinessHours, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetActiveByStore(ctx context.Context, storeID int64) ([]*domain.Staff, error)
	// GetForService возвращает всех назначенных на услугу мастеров, включая неактивных
	GetForService(ctx context.Context, serviceID, storeID int64) ([]*domain.Staff, error)
	GetAvailabilityRules(ctx context.Context, staffID int64) ([]*domain.StaffAvailabilityRule, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAddonsByIDs(ctx context.Context, serviceID int64, ids []int64) ([]*domain.Addon, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetForStaffOnDate получает занимающие время записи мастера с началом в [from, to)
	GetForStaffOnDate(ctx context.Context, staffID, storeID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// SlotsObserver приемник метрики количества найденных слотов (реализуется pkg/metrics.Metrics)
type SlotsObserver interface {
	ObserveAvailableSlots(mode string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
