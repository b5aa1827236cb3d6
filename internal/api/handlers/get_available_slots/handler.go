package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingStoreID   = "ID салона обязателен"
	msgInvalidStoreID   = "некорректный ID салона"
	msgInvalidSlug      = "некорректный адрес салона"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "длительность должна быть положительным числом минут"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidAddonIDs  = "некорректный список дополнений"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgStoreNotFound    = "салон не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgStaffNotFound    = "мастер не найден"
	msgAddonNotFound    = "дополнение не найдено"
)

var parseErrorMessages = map[error]string{
	errMissingServiceID: msgMissingServiceID,
	errInvalidServiceID: msgInvalidServiceID,
	errMissingStoreID:   msgMissingStoreID,
	errInvalidStoreID:   msgInvalidStoreID,
	errMissingDate:      msgMissingDate,
	errInvalidDate:      msgInvalidDate,
	errInvalidDuration:  msgInvalidDuration,
	errInvalidStaffID:   msgInvalidStaffID,
	errInvalidAddonIDs:  msgInvalidAddonIDs,
}

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/availability
// Query params: serviceId, storeId, date (YYYY-MM-DD) - обязательные; duration, staffId, addonIds - опциональные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "GET /availability"

	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), true)
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondBadRequest(w, parseErrorMessage(err))
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		useCaseReq.UserID = userID
	}

	h.serve(w, r, route, useCaseReq)
}

// HandlePublic GET /api/public/store/{slug}/availability
// Те же query параметры, кроме storeId: салон определяется по slug
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	const route = "GET /public/store/{slug}/availability"

	slug := strings.TrimSpace(mux.Vars(r)["slug"])
	if slug == "" {
		h.logger.Warn("%s - Empty slug", route)
		handlers.RespondBadRequest(w, msgInvalidSlug)
		return
	}

	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), false)
	if err != nil {
		h.logger.Warn("%s - Invalid query: slug=%s, error=%v", route, slug, err)
		handlers.RespondBadRequest(w, parseErrorMessage(err))
		return
	}
	useCaseReq.StoreSlug = slug

	h.serve(w, r, route, useCaseReq)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, route string, req *getAvailableSlots.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: store_id=%d, slug=%s, error=%v", route, req.StoreID, req.StoreSlug, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getAvailableSlots.ErrStoreNotFound):
			h.logger.Warn("%s - Store not found: store_id=%d, slug=%s", route, req.StoreID, req.StoreSlug)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found: service_id=%d", route, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("%s - Staff not found: service_id=%d", route, req.ServiceID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrAddonNotFound):
			h.logger.Warn("%s - Addon not found: service_id=%d, addon_ids=%v", route, req.ServiceID, req.AddonIDs)
			handlers.RespondNotFound(w, msgAddonNotFound)

		default:
			h.logger.Error("%s - Failed to get slots: store_id=%d, slug=%s, service_id=%d, error=%v",
				route, req.StoreID, req.StoreSlug, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Slots retrieved successfully: store_id=%d, service_id=%d, date=%s, slots_count=%d",
		route, result.StoreID, result.ServiceID, req.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseErrorMessage(err error) string {
	if msg, ok := parseErrorMessages[err]; ok {
		return msg
	}
	return msgInvalidRequest
}
