package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonService/internal/availability"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	storeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SalonService/pkg/tzconv"
)

// DefaultStaffParallelism сколько мастеров обрабатывается одновременно
const DefaultStaffParallelism = 8

// UseCase use case для получения свободного времени записи
type UseCase struct {
	storeRepo       StoreRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository
	metrics         SlotsObserver
	timeProvider    TimeProvider
	logger          Logger
	parallelism     int
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	storeRepo StoreRepository,
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	metrics SlotsObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		storeRepo:       storeRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		parallelism:     DefaultStaffParallelism,
	}
}

// WithParallelism задает ограничение параллельной обработки мастеров
func (uc *UseCase) WithParallelism(n int) *UseCase {
	if n > 0 {
		uc.parallelism = n
	}
	return uc
}

// Execute выполняет use case получения свободного времени
//
// Ошибки конфигурации салона (нет часового пояса, пояс не загружается, нет часов работы,
// выходной) дают пустой список слотов, а не ошибку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, store=%d, slug=%q, service=%d, date=%s",
		req.UserID, req.StoreID, req.StoreSlug, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Салон
	store, err := uc.getStore(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Услуга и длительность записи
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if service.StoreID != store.ID || !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not offered by store id=%d", service.ID, store.ID)
		return nil, ErrServiceNotFound
	}

	duration, err := uc.resolveDuration(ctx, req, service)
	if err != nil {
		return nil, err
	}

	// 4. Мастера
	staffList, mode, err := uc.resolveStaff(ctx, req, store, service)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:            req.Date,
		StoreID:         store.ID,
		ServiceID:       service.ID,
		DurationMinutes: duration,
		Timezone:        store.Timezone,
		Slots:           []domain.TimeSlot{},
	}

	// 5. Часовой пояс: без него слоты не вычисляются
	if !store.HasTimezone() {
		uc.logger.Warn("GetAvailableSlots: store id=%d has no timezone configured", store.ID)
		return response, nil
	}
	loc, err := tzconv.LoadLocation(store.Timezone)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: store id=%d has unknown timezone %q: %v", store.ID, store.Timezone, err)
		return response, nil
	}

	// 6. Часы работы салона
	hours, err := uc.storeRepo.GetBusinessHours(ctx, store.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get business hours for store id=%d: %v", store.ID, err)
		return nil, fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
	}

	// 7. Слоты по каждому мастеру параллельно
	slots, err := uc.collectSlots(ctx, store, staffList, hours, req.Date, loc, duration, now)
	if err != nil {
		return nil, err
	}
	response.Slots = slots

	if uc.metrics != nil {
		uc.metrics.ObserveAvailableSlots(mode, len(slots))
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for store=%d, service=%d, staff=%d, date=%s",
		len(slots), store.ID, service.ID, len(staffList), req.Date.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) getStore(ctx context.Context, req *Request) (*domain.Store, error) {
	var (
		store *domain.Store
		err   error
	)
	if req.StoreID > 0 {
		store, err = uc.storeRepo.GetByID(ctx, req.StoreID)
	} else {
		store, err = uc.storeRepo.GetBySlug(ctx, req.StoreSlug)
	}

	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("GetAvailableSlots: store id=%d slug=%q not found", req.StoreID, req.StoreSlug)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get store id=%d slug=%q: %v", req.StoreID, req.StoreSlug, err)
		return nil, fmt.Errorf("%w: failed to get store: %w", ErrInternal, err)
	}

	if !store.IsActive {
		uc.logger.Warn("GetAvailableSlots: store id=%d is not active", store.ID)
		return nil, ErrStoreNotFound
	}

	return store, nil
}

// resolveDuration явная длительность имеет приоритет, иначе длительность услуги + дополнения
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request, service *domain.Service) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	ids := uniqueIDs(req.AddonIDs)
	addons, err := uc.serviceRepo.GetAddonsByIDs(ctx, service.ID, ids)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get addons for service id=%d: %v", service.ID, err)
		return 0, fmt.Errorf("%w: failed to get addons: %w", ErrInternal, err)
	}
	if len(addons) != len(ids) {
		uc.logger.Warn("GetAvailableSlots: requested %d addons, found %d for service id=%d", len(ids), len(addons), service.ID)
		return 0, ErrAddonNotFound
	}

	duration := domain.TotalDurationMinutes(service, addons)
	if duration <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%d has non-positive duration %d", service.ID, duration)
		return 0, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	return duration, nil
}

// resolveStaff возвращает мастеров, для которых считаются слоты, и режим подбора
func (uc *UseCase) resolveStaff(ctx context.Context, req *Request, store *domain.Store, service *domain.Service) ([]*domain.Staff, string, error) {
	if req.StaffID != nil {
		staff, err := uc.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", *req.StaffID)
				return nil, ModeSpecificStaff, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, ModeSpecificStaff, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
		}
		if staff.StoreID != store.ID || !staff.IsActive {
			uc.logger.Warn("GetAvailableSlots: staff id=%d is not active in store id=%d", staff.ID, store.ID)
			return nil, ModeSpecificStaff, ErrStaffNotFound
		}
		return []*domain.Staff{staff}, ModeSpecificStaff, nil
	}

	assigned, err := uc.staffRepo.GetForService(ctx, service.ID, store.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff for service id=%d: %v", service.ID, err)
		return nil, ModeAnyStaff, fmt.Errorf("%w: failed to get staff for service: %w", ErrInternal, err)
	}

	// У услуги нет явного назначения - её выполняет любой мастер салона
	if len(assigned) == 0 {
		active, err := uc.staffRepo.GetActiveByStore(ctx, store.ID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get active staff for store id=%d: %v", store.ID, err)
			return nil, ModeAnyStaff, fmt.Errorf("%w: failed to get store staff: %w", ErrInternal, err)
		}
		return active, ModeAnyStaff, nil
	}

	active := make([]*domain.Staff, 0, len(assigned))
	for _, s := range assigned {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, ModeAnyStaff, nil
}

// collectSlots считает слоты каждого мастера и сливает их в один отсортированный список
// Ошибка любого мастера отменяет весь запрос: частичный результат не возвращается
func (uc *UseCase) collectSlots(
	ctx context.Context,
	store *domain.Store,
	staffList []*domain.Staff,
	hours []*domain.BusinessHours,
	date time.Time,
	loc *time.Location,
	duration int,
	now time.Time,
) ([]domain.TimeSlot, error) {
	perStaff := make([][]domain.TimeSlot, len(staffList))
	dayStart, dayEnd := tzconv.DayBounds(date, loc)
	granularity := store.SlotGranularity()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.parallelism)

	for i, staff := range staffList {
		g.Go(func() error {
			rules, err := uc.staffRepo.GetAvailabilityRules(gctx, staff.ID)
			if err != nil {
				uc.logger.Error("GetAvailableSlots: failed to get rules for staff id=%d: %v", staff.ID, err)
				return fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
			}

			localWindows := availability.ResolveWorkingWindows(hours, rules, date.Weekday())
			if len(localWindows) == 0 {
				return nil
			}

			appointments, err := uc.appointmentRepo.GetForStaffOnDate(gctx, staff.ID, store.ID, dayStart, dayEnd)
			if err != nil {
				uc.logger.Error("GetAvailableSlots: failed to get appointments for staff id=%d: %v", staff.ID, err)
				return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
			}

			windows := availability.ToIntervals(date, localWindows, loc)
			busy := availability.CollectBusyIntervals(appointments, date, loc)
			starts := availability.GenerateSlots(windows, busy, duration, granularity, now)

			slots := make([]domain.TimeSlot, 0, len(starts))
			for _, start := range starts {
				slots = append(slots, domain.TimeSlot{Time: start, StaffID: staff.ID, StaffName: staff.Name})
			}
			perStaff[i] = slots
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]domain.TimeSlot, 0)
	for _, slots := range perStaff {
		result = append(result, slots...)
	}

	sort.SliceStable(result, func(a, b int) bool {
		if !result[a].Time.Equal(result[b].Time) {
			return result[a].Time.Before(result[b].Time)
		}
		return result[a].StaffID < result[b].StaffID
	})

	return result, nil
}
