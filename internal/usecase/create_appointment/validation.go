package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/availability"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if len(req.AddonIDs) > domain.MaxAddonsPerAppointment {
		return fmt.Errorf("%w: too many addons, max %d", ErrInvalidInput, domain.MaxAddonsPerAppointment)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlot проверяет, что start - один из слотов, которые движок предложил бы без учета занятости
func validateSlot(windows []availability.Interval, start time.Time, duration, granularity int, now time.Time) error {
	if start.Before(now) {
		return ErrTooLateToBook
	}

	for _, candidate := range availability.GenerateSlots(windows, nil, duration, granularity, time.Time{}) {
		if candidate.Equal(start) {
			return nil
		}
	}

	return ErrInvalidTimeSlot
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
