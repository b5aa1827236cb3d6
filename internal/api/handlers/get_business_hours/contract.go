package get_business_hours

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/businesshours/models"
)

type BusinessHoursService interface {
	Get(ctx context.Context, storeID int64) (*models.BusinessHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
