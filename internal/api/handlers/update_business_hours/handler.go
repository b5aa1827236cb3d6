package update_business_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/businesshours"
)

const (
	msgInvalidStoreID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidHours       = "некорректные часы работы"
	msgDuplicateDay       = "день недели указан несколько раз"
	msgStoreNotFound      = "салон не найден"
)

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/stores/{storeId}/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("PUT /stores/{id}/business-hours - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /stores/{id}/business-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stores/{id}/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hours, err := h.service.Replace(r.Context(), storeID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrDuplicateDay):
			h.logger.Warn("PUT /stores/{id}/business-hours - Duplicate day: store_id=%d", storeID)
			handlers.RespondBadRequest(w, msgDuplicateDay)

		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /stores/{id}/business-hours - Invalid hours: store_id=%d, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, businesshours.ErrStoreNotFound):
			h.logger.Warn("PUT /stores/{id}/business-hours - Store not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		default:
			h.logger.Error("PUT /stores/{id}/business-hours - Failed to replace business hours: store_id=%d, error=%v",
				storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /stores/{id}/business-hours - Business hours replaced: store_id=%d, user_id=%d, days=%d",
		storeID, userID, len(hours.Days))
	handlers.RespondJSON(w, http.StatusOK, hours)
}
