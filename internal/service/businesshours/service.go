package businesshours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	storeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SalonService/internal/service/businesshours/models"
	"github.com/m04kA/SMC-SalonService/pkg/tzconv"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Service сервис для работы с часами работы салона
type Service struct {
	storeRepo    StoreRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса часов работы
func NewService(storeRepo StoreRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		storeRepo:    storeRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get получает недельное расписание салона
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, storeID int64) (*models.BusinessHoursResponse, error) {
	s.logger.Info("Get: fetching business hours for store=%d", storeID)

	var (
		store *domain.Store
		hours []*domain.BusinessHours
	)

	// Салон и часы читаются из одного снимка
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		store, err = s.getStore(txCtx, "Get", storeID)
		if err != nil {
			return err
		}

		hours, err = s.storeRepo.GetBusinessHours(txCtx, storeID)
		if err != nil {
			s.logger.Error("Get: repository error for store=%d: %v", storeID, err)
			return fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("Get: transaction error for store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: Get - transaction error: %w", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched %d days for store=%d", len(hours), storeID)
	return models.FromDomainBusinessHours(store, s.abbr(store), hours), nil
}

// Replace заменяет недельное расписание салона целиком
func (s *Service) Replace(ctx context.Context, storeID int64, req *models.ReplaceBusinessHoursRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("Replace: replacing business hours for store=%d by user=%d, days=%d", storeID, req.UserID, len(req.Days))

	hours, err := validateDays(storeID, req.Days)
	if err != nil {
		s.logger.Warn("Replace: validation failed for store=%d: %v", storeID, err)
		return nil, err
	}

	store, err := s.getStore(ctx, "Replace", storeID)
	if err != nil {
		return nil, err
	}

	var saved []*domain.BusinessHours
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		saved, err = s.storeRepo.ReplaceBusinessHours(txCtx, storeID, hours)
		return err
	})
	if err != nil {
		if errors.Is(err, storeRepo.ErrDuplicateDay) {
			s.logger.Warn("Replace: duplicate day for store=%d", storeID)
			return nil, ErrDuplicateDay
		}
		s.logger.Error("Replace: repository error for store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Replace: successfully saved %d days for store=%d", len(saved), storeID)
	return models.FromDomainBusinessHours(store, s.abbr(store), saved), nil
}

func (s *Service) getStore(ctx context.Context, op string, storeID int64) (*domain.Store, error) {
	if storeID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			s.logger.Warn("%s: store id=%d not found", op, storeID)
			return nil, ErrStoreNotFound
		}
		s.logger.Error("%s: failed to get store id=%d: %v", op, storeID, err)
		return nil, fmt.Errorf("%w: %s - failed to get store: %w", ErrInternal, op, err)
	}
	return store, nil
}

func (s *Service) abbr(store *domain.Store) string {
	if !store.HasTimezone() {
		return ""
	}
	return tzconv.Abbr(store.Timezone, s.timeProvider.Now())
}

// validateDays проверяет дни расписания и конвертирует их в domain модели
// Правила: день 0-6, каждый день не более одного раза, время HH:MM, открытие раньше закрытия
func validateDays(storeID int64, days []models.DayHoursRequest) ([]*domain.BusinessHours, error) {
	if len(days) > 7 {
		return nil, fmt.Errorf("%w: at most 7 days expected, got %d", ErrInvalidInput, len(days))
	}

	seen := make(map[int]struct{}, len(days))
	hours := make([]*domain.BusinessHours, 0, len(days))

	for _, day := range days {
		if !domain.IsValidDayOfWeek(day.DayOfWeek) {
			return nil, fmt.Errorf("%w: dayOfWeek must be in range 0-6, got %d", ErrInvalidInput, day.DayOfWeek)
		}
		if _, ok := seen[day.DayOfWeek]; ok {
			return nil, fmt.Errorf("%w: day %d", ErrDuplicateDay, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = struct{}{}

		if day.IsClosed {
			hours = append(hours, day.ToDomainBusinessHours(storeID, "", ""))
			continue
		}

		if day.OpenTime == nil || day.CloseTime == nil {
			return nil, fmt.Errorf("%w: openTime and closeTime are required for day %d", ErrInvalidInput, day.DayOfWeek)
		}

		openTime, err := types.NewTimeStringFromString(*day.OpenTime)
		if err != nil || openTime == types.EndOfDay {
			return nil, fmt.Errorf("%w: invalid openTime %q for day %d", ErrInvalidInput, *day.OpenTime, day.DayOfWeek)
		}
		closeTime, err := types.NewTimeStringFromString(*day.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closeTime %q for day %d", ErrInvalidInput, *day.CloseTime, day.DayOfWeek)
		}

		h := day.ToDomainBusinessHours(storeID, openTime, closeTime)
		if _, _, ok := h.OpenWindow(); !ok {
			return nil, fmt.Errorf("%w: openTime must be before closeTime for day %d", ErrInvalidInput, day.DayOfWeek)
		}
		hours = append(hours, h)
	}

	return hours, nil
}
