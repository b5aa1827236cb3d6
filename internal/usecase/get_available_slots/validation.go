package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID <= 0 && strings.TrimSpace(req.StoreSlug) == "" {
		return fmt.Errorf("%w: storeID must be positive or store slug given", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
		}
		if *req.DurationMinutes > domain.MaxAppointmentDurationMinutes {
			return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxAppointmentDurationMinutes)
		}
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if len(req.AddonIDs) > domain.MaxAddonsPerAppointment {
		return fmt.Errorf("%w: too many addons, max %d", ErrInvalidInput, domain.MaxAddonsPerAppointment)
	}
	for _, id := range req.AddonIDs {
		if id <= 0 {
			return fmt.Errorf("%w: addonID must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// uniqueIDs убирает повторы, сохраняя порядок
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
