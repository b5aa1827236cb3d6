package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/availability"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	storeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-SalonService/pkg/tzconv"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	storeRepo       StoreRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository
	notifier        NotificationClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	storeRepo StoreRepository,
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	notifier NotificationClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		storeRepo:       storeRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, store=%d, service=%d, staff=%d, starts_at=%s",
		req.UserID, req.StoreID, req.ServiceID, req.StaffID, req.StartsAt.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Салон и его часовой пояс
	store, loc, err := uc.getStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	// 3. Услуга и длительность с дополнениями
	service, err := uc.getService(ctx, req.ServiceID, store.ID)
	if err != nil {
		return nil, err
	}

	duration, err := uc.resolveDuration(ctx, service, req.AddonIDs)
	if err != nil {
		return nil, err
	}

	// 4. Мастер
	staff, err := uc.getStaff(ctx, req.StaffID, store.ID)
	if err != nil {
		return nil, err
	}

	// 5. Момент начала задан однозначно, локальная дата салона выводится из него
	// Повторяющийся при переводе часов назад час различается смещением
	startsAt := req.StartsAt.UTC()
	date := tzconv.ToLocalParts(startsAt, loc).Date()

	// 6. Время должно быть слотом рабочего дня мастера
	windows, err := uc.workingWindows(ctx, store.ID, staff.ID, date, loc)
	if err != nil {
		return nil, err
	}
	if err := validateSlot(windows, startsAt, duration, store.SlotGranularity(), now); err != nil {
		uc.logger.Warn("CreateAppointment: %s is not bookable for staff id=%d: %v",
			startsAt.Format(time.RFC3339), staff.ID, err)
		return nil, err
	}

	var result *domain.Appointment

	// 7. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Запись предыдущего дня может заканчиваться после полуночи
		dayStart, dayEnd := tzconv.DayBounds(date, loc)
		from := dayStart.Add(-time.Duration(domain.MaxAppointmentDurationMinutes) * time.Minute)

		existing, err := uc.appointmentRepo.GetForStaffOnDate(txCtx, staff.ID, store.ID, from, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments for staff id=%d: %v", staff.ID, err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		end := startsAt.Add(time.Duration(duration) * time.Minute)
		for _, a := range existing {
			if !a.OccupiesTime() {
				continue
			}
			busy := availability.Interval{Start: a.Date, End: a.End()}
			if busy.Overlaps(startsAt, end) {
				uc.logger.Warn("CreateAppointment: slot %s overlaps appointment id=%d of staff id=%d",
					startsAt.Format(time.RFC3339), a.ID, staff.ID)
				return ErrSlotNotAvailable
			}
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			StoreID:         store.ID,
			StaffID:         staff.ID,
			CustomerID:      req.UserID,
			ServiceID:       service.ID,
			Date:            startsAt,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	abbr := tzconv.Abbr(store.Timezone, result.Date)
	uc.notify(ctx, store, staff, service, result, loc, abbr)

	localStart := tzconv.ToLocalParts(result.Date, loc)
	return &Response{
		ID:              result.ID,
		StoreID:         result.StoreID,
		StaffID:         result.StaffID,
		StaffName:       staff.Name,
		CustomerID:      result.CustomerID,
		ServiceID:       result.ServiceID,
		ServiceName:     service.Name,
		StartsAt:        result.Date,
		LocalDate:       localStart.Date(),
		LocalStartTime:  types.NewTimeString(result.Date.In(loc)),
		TimezoneAbbr:    abbr,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) getStore(ctx context.Context, storeID int64) (*domain.Store, *time.Location, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("CreateAppointment: store id=%d not found", storeID)
			return nil, nil, ErrStoreNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get store id=%d: %v", storeID, err)
		return nil, nil, fmt.Errorf("%w: failed to get store: %w", ErrInternal, err)
	}
	if !store.IsActive {
		uc.logger.Warn("CreateAppointment: store id=%d is not active", storeID)
		return nil, nil, ErrStoreNotFound
	}

	if !store.HasTimezone() {
		uc.logger.Warn("CreateAppointment: store id=%d has no timezone configured", storeID)
		return nil, nil, ErrStoreNotConfigured
	}
	loc, err := tzconv.LoadLocation(store.Timezone)
	if err != nil {
		uc.logger.Warn("CreateAppointment: store id=%d has unknown timezone %q", storeID, store.Timezone)
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreNotConfigured, err)
	}

	return store, loc, nil
}

func (uc *UseCase) getService(ctx context.Context, serviceID, storeID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if service.StoreID != storeID || !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is not offered by store id=%d", serviceID, storeID)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func (uc *UseCase) resolveDuration(ctx context.Context, service *domain.Service, addonIDs []int64) (int, error) {
	ids := uniqueIDs(addonIDs)
	addons, err := uc.serviceRepo.GetAddonsByIDs(ctx, service.ID, ids)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get addons for service id=%d: %v", service.ID, err)
		return 0, fmt.Errorf("%w: failed to get addons: %w", ErrInternal, err)
	}
	if len(addons) != len(ids) {
		uc.logger.Warn("CreateAppointment: requested %d addons, found %d for service id=%d", len(ids), len(addons), service.ID)
		return 0, ErrAddonNotFound
	}

	duration := domain.TotalDurationMinutes(service, addons)
	if duration <= 0 || duration > domain.MaxAppointmentDurationMinutes {
		return 0, fmt.Errorf("%w: appointment duration %d minutes is out of range", ErrInvalidInput, duration)
	}
	return duration, nil
}

func (uc *UseCase) getStaff(ctx context.Context, staffID, storeID int64) (*domain.Staff, error) {
	staff, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if staff.StoreID != storeID || !staff.IsActive {
		uc.logger.Warn("CreateAppointment: staff id=%d is not active in store id=%d", staffID, storeID)
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (uc *UseCase) workingWindows(ctx context.Context, storeID, staffID int64, date time.Time, loc *time.Location) ([]availability.Interval, error) {
	hours, err := uc.storeRepo.GetBusinessHours(ctx, storeID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get business hours for store id=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
	}

	rules, err := uc.staffRepo.GetAvailabilityRules(ctx, staffID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get rules for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
	}

	local := availability.ResolveWorkingWindows(hours, rules, date.Weekday())
	return availability.ToIntervals(date, local, loc), nil
}

// notify отправляет подтверждение клиенту; ошибка не влияет на созданную запись
func (uc *UseCase) notify(
	ctx context.Context,
	store *domain.Store,
	staff *domain.Staff,
	service *domain.Service,
	appointment *domain.Appointment,
	loc *time.Location,
	abbr string,
) {
	if uc.notifier == nil {
		return
	}

	err := uc.notifier.SendAppointmentConfirmation(ctx, &notificationservice.AppointmentConfirmation{
		AppointmentID:   appointment.ID,
		CustomerID:      appointment.CustomerID,
		StoreID:         store.ID,
		StoreName:       store.Name,
		StaffName:       staff.Name,
		ServiceName:     service.Name,
		StartsAt:        appointment.Date,
		LocalStartsAt:   appointment.Date.In(loc).Format(domain.DateFormat + " " + domain.TimeFormat),
		TimezoneAbbr:    abbr,
		DurationMinutes: appointment.DurationMinutes,
	})
	if err != nil {
		if errors.Is(err, notificationservice.ErrDisabled) {
			return
		}
		uc.logger.Warn("CreateAppointment: failed to send confirmation for appointment id=%d: %v", appointment.ID, err)
	}
}
