package get_business_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/businesshours"
)

const (
	msgInvalidStoreID = "некорректный ID салона"
	msgStoreNotFound  = "салон не найден"
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

// Handle GET /api/stores/{storeId}/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("GET /stores/{id}/business-hours - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	hours, err := h.service.Get(r.Context(), storeID)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrStoreNotFound):
			h.logger.Warn("GET /stores/{id}/business-hours - Store not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		default:
			h.logger.Error("GET /stores/{id}/business-hours - Failed to get business hours: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/{id}/business-hours - Business hours retrieved: store_id=%d, days=%d", storeID, len(hours.Days))
	handlers.RespondJSON(w, http.StatusOK, hours)
}
