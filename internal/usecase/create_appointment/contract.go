package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
)

// StoreRepository интерфейс репозитория салонов
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetBusinessHours(ctx context.Context, storeID int64) ([]*domain.BusinessHours, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetAvailabilityRules(ctx context.Context, staffID int64) ([]*domain.StaffAvailabilityRule, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAddonsByIDs(ctx context.Context, serviceID int64, ids []int64) ([]*domain.Addon, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetForStaffOnDate(ctx context.Context, staffID, storeID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	SendAppointmentConfirmation(ctx context.Context, confirmation *notificationservice.AppointmentConfirmation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
