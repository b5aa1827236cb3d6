package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	storeRepo       StoreRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	storeRepo StoreRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		storeRepo:       storeRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getOwned(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment, s.storeTimezone(ctx, appointment.StoreID)), nil
}

// Cancel отменяет запись клиента
// Отменить можно только запись в статусе pending или confirmed
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	reason := strings.TrimSpace(req.CancellationReason)
	if len([]rune(reason)) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason is too long for appointment id=%d", appointmentID)
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.getOwned(ctx, "Cancel", appointmentID, req.UserID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, reason); err != nil {
		// Статус мог измениться между чтением и обновлением
		if errors.Is(err, appointmentRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: appointment id=%d changed status concurrently", appointmentID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	cancelled, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - reload error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return models.FromDomainAppointment(cancelled, s.storeTimezone(ctx, cancelled.StoreID)), nil
}

func (s *Service) getOwned(ctx context.Context, op string, id, userID int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if appointment.CustomerID != userID {
		s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

// storeTimezone часовой пояс салона; ошибка чтения не мешает отдать запись в UTC
func (s *Service) storeTimezone(ctx context.Context, storeID int64) string {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		s.logger.Warn("storeTimezone: failed to get store id=%d: %v", storeID, err)
		return ""
	}
	return store.Timezone
}
