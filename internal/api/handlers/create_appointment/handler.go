package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartsAt    = "некорректное время начала, ожидается RFC3339, например 2025-10-15T14:00:00Z"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные записи"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgStoreNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgAddonNotFound      = "дополнение не найдено"
	msgStoreNotConfigured = "у салона не настроен часовой пояс"
	msgInvalidTimeSlot    = "выбранное время не совпадает со свободным слотом мастера"
	msgTooLateToBook      = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, store_id=%d, staff_id=%d",
				userID, req.StoreID, req.StaffID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrStoreNotFound):
			h.logger.Warn("POST /appointments - Store not found: store_id=%d", req.StoreID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: store_id=%d, service_id=%d", req.StoreID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: store_id=%d, staff_id=%d", req.StoreID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrAddonNotFound):
			h.logger.Warn("POST /appointments - Addon not found: service_id=%d, addon_ids=%v", req.ServiceID, req.AddonIDs)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, createAppointment.ErrStoreNotConfigured):
			h.logger.Warn("POST /appointments - Store timezone not configured: store_id=%d", req.StoreID)
			handlers.RespondBadRequest(w, msgStoreNotConfigured)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: user_id=%d, store_id=%d, starts_at=%s",
				userID, req.StoreID, req.StartsAt)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: user_id=%d, store_id=%d", userID, req.StoreID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, store_id=%d, error=%v",
				userID, req.StoreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, store_id=%d",
		result.ID, userID, req.StoreID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
