package businesshours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// StoreRepository интерфейс репозитория салонов и часов работы
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetBusinessHours(ctx context.Context, storeID int64) ([]*domain.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, storeID int64, hours []*domain.BusinessHours) ([]*domain.BusinessHours, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
