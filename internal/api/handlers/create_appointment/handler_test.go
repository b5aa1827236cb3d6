package create_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	created := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	return &createAppointment.Response{
		ID:              501,
		StoreID:         req.StoreID,
		StaffID:         req.StaffID,
		StaffName:       "Anna",
		CustomerID:      req.UserID,
		ServiceID:       req.ServiceID,
		ServiceName:     "Haircut",
		StartsAt:        req.StartsAt,
		LocalDate:       time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		LocalStartTime:  types.TimeString("10:00"),
		TimezoneAbbr:    "EST",
		DurationMinutes: 30,
		Status:          "confirmed",
		CreatedAt:       created,
		UpdatedAt:       created,
	}, nil
}

func serve(uc *fakeUseCase, userID int64, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, 42, `{"storeId":1,"serviceId":7,"staffId":3,"startsAt":"2025-01-13T15:00:00Z","addonIds":[2]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id":501,"storeId":1,"staffId":3,"staffName":"Anna","customerId":42,"serviceId":7,"serviceName":"Haircut",
		"startsAt":"2025-01-13T15:00:00Z","localDate":"2025-01-13","localStartTime":"10:00","timezoneAbbr":"EST",
		"durationMinutes":30,"status":"confirmed",
		"createdAt":"2025-01-10T12:00:00Z","updatedAt":"2025-01-10T12:00:00Z"
	}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, time.Date(2025, 1, 13, 15, 0, 0, 0, time.UTC), uc.got.StartsAt)
	assert.Equal(t, []int64{2}, uc.got.AddonIDs)
}

func TestHandle_OffsetIsNormalizedToUTC(t *testing.T) {
	uc := &fakeUseCase{}

	// второе прохождение 01:00 в день перевода часов назад
	rec := serve(uc, 42, `{"storeId":1,"serviceId":7,"staffId":3,"startsAt":"2025-11-02T01:00:00-05:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, time.Date(2025, 11, 2, 6, 0, 0, 0, time.UTC), uc.got.StartsAt)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"storeId":`},
		{name: "unknown field", body: `{"storeId":1,"userId":5}`},
		{name: "missing start", body: `{"storeId":1,"serviceId":7,"staffId":3}`},
		{name: "local time without offset", body: `{"storeId":1,"serviceId":7,"staffId":3,"startsAt":"2025-01-13T10:00:00"}`},
		{name: "bad start", body: `{"storeId":1,"serviceId":7,"staffId":3,"startsAt":"13/01/2025 10:00"}`},
		{name: "removed local fields", body: `{"storeId":1,"serviceId":7,"staffId":3,"date":"2025-01-13","startTime":"10:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}

			rec := serve(uc, 42, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: createAppointment.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{err: createAppointment.ErrStoreNotFound, wantStatus: http.StatusNotFound},
		{err: createAppointment.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{err: createAppointment.ErrStaffNotFound, wantStatus: http.StatusNotFound},
		{err: createAppointment.ErrAddonNotFound, wantStatus: http.StatusNotFound},
		{err: createAppointment.ErrStoreNotConfigured, wantStatus: http.StatusBadRequest},
		{err: createAppointment.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{err: createAppointment.ErrTooLateToBook, wantStatus: http.StatusBadRequest},
		{err: createAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: createAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, 42,
				`{"storeId":1,"serviceId":7,"staffId":3,"startsAt":"2025-01-13T15:00:00Z"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	rec := serve(&fakeUseCase{}, 0, `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
