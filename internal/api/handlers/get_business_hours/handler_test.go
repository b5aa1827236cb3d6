package get_business_hours

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/service/businesshours"
	"github.com/m04kA/SMC-SalonService/internal/service/businesshours/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(_ context.Context, storeID int64) (*models.BusinessHoursResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BusinessHoursResponse{
		StoreID:      storeID,
		Timezone:     "America/New_York",
		TimezoneAbbr: "EST",
		Days:         []models.DayHoursResponse{{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"}},
	}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "ok", path: "/api/stores/1/business-hours", wantStatus: http.StatusOK},
		{name: "bad id", path: "/api/stores/x/business-hours", wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/api/stores/1/business-hours", err: businesshours.ErrStoreNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", path: "/api/stores/1/business-hours", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			r := mux.NewRouter()
			r.HandleFunc("/api/stores/{storeId}/business-hours", h.Handle)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{
					"storeId":1,"timezone":"America/New_York","timezoneAbbr":"EST",
					"days":[{"dayOfWeek":1,"openTime":"09:00","closeTime":"17:00","isClosed":false}]
				}`, rec.Body.String())
			}
		})
	}
}
