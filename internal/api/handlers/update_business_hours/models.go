package update_business_hours

import (
	"github.com/m04kA/SMC-SalonService/internal/service/businesshours/models"
)

// UpdateBusinessHoursRequest HTTP request model
type UpdateBusinessHoursRequest struct {
	Days []models.DayHoursRequest `json:"days"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBusinessHoursRequest) ToServiceRequest(userID int64) *models.ReplaceBusinessHoursRequest {
	return &models.ReplaceBusinessHoursRequest{
		UserID: userID,
		Days:   r.Days,
	}
}
