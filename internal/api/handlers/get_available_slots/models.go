package get_available_slots

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// Ошибки разбора query параметров (текст уходит в лог, клиенту - сообщение из handler.go)
var (
	errMissingServiceID = errors.New("serviceId is required")
	errInvalidServiceID = errors.New("serviceId must be a positive integer")
	errMissingStoreID   = errors.New("storeId is required")
	errInvalidStoreID   = errors.New("storeId must be a positive integer")
	errMissingDate      = errors.New("date is required")
	errInvalidDate      = errors.New("date must be YYYY-MM-DD")
	errInvalidDuration  = errors.New("duration must be a positive integer")
	errInvalidStaffID   = errors.New("staffId must be a positive integer")
	errInvalidAddonIDs  = errors.New("addonIds must be a comma separated list of positive integers")
)

// TimeSlotResponse HTTP response model
type TimeSlotResponse struct {
	Time      string `json:"time"` // ISO 8601, UTC
	StaffID   int64  `json:"staffId"`
	StaffName string `json:"staffName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Пустой результат отдается как [], а не null
func FromUseCaseResponse(resp *getAvailableSlots.Response) []TimeSlotResponse {
	slots := make([]TimeSlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, TimeSlotResponse{
			Time:      slot.Time.UTC().Format(time.RFC3339),
			StaffID:   slot.StaffID,
			StaffName: slot.StaffName,
		})
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из query параметров
// storeRequired == false для публичного маршрута, где салон задается slug в пути
func ToUseCaseRequest(query url.Values, storeRequired bool) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{}

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		return nil, errMissingServiceID
	}
	serviceID, err := parsePositiveID(serviceIDStr)
	if err != nil {
		return nil, errInvalidServiceID
	}
	req.ServiceID = serviceID

	if storeRequired {
		storeIDStr := query.Get("storeId")
		if storeIDStr == "" {
			return nil, errMissingStoreID
		}
		storeID, err := parsePositiveID(storeIDStr)
		if err != nil {
			return nil, errInvalidStoreID
		}
		req.StoreID = storeID
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}
	req.Date = date

	if durationStr := query.Get("duration"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration <= 0 {
			return nil, errInvalidDuration
		}
		req.DurationMinutes = &duration
	}

	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		staffID, err := parsePositiveID(staffIDStr)
		if err != nil {
			return nil, errInvalidStaffID
		}
		req.StaffID = &staffID
	}

	if addonsStr := query.Get("addonIds"); addonsStr != "" {
		for _, part := range strings.Split(addonsStr, ",") {
			addonID, err := parsePositiveID(strings.TrimSpace(part))
			if err != nil {
				return nil, errInvalidAddonIDs
			}
			req.AddonIDs = append(req.AddonIDs, addonID)
		}
	}

	return req, nil
}

func parsePositiveID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
