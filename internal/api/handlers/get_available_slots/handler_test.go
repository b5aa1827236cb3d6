package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, logger.NewNop())
	r := mux.NewRouter()
	r.Handle("/api/availability", middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodGet)
	r.HandleFunc("/api/public/store/{slug}/availability", h.HandlePublic).Methods(http.MethodGet)
	return r
}

func TestHandle_ReturnsBareArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		StoreID:   1,
		ServiceID: 7,
		Slots: []domain.TimeSlot{
			{Time: time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC), StaffID: 1, StaffName: "Anna"},
			{Time: time.Date(2025, 1, 13, 14, 30, 0, 0, time.UTC), StaffID: 2, StaffName: "Bella"},
		},
	}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/availability?serviceId=7&storeId=1&date=2025-01-13&duration=45&staffId=2&addonIds=3,4", nil)
	req.Header.Set(middleware.UserIDHeader, "99")
	rec := httptest.NewRecorder()

	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"time":"2025-01-13T14:00:00Z","staffId":1,"staffName":"Anna"},
		{"time":"2025-01-13T14:30:00Z","staffId":2,"staffName":"Bella"}
	]`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(99), uc.got.UserID)
	assert.Equal(t, int64(1), uc.got.StoreID)
	assert.Equal(t, int64(7), uc.got.ServiceID)
	assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), uc.got.Date)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 45, *uc.got.DurationMinutes)
	require.NotNil(t, uc.got.StaffID)
	assert.Equal(t, int64(2), *uc.got.StaffID)
	assert.Equal(t, []int64{3, 4}, uc.got.AddonIDs)
}

func TestHandle_EmptyResultIsEmptyArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Slots: []domain.TimeSlot{}}}

	req := httptest.NewRequest(http.MethodGet, "/api/availability?serviceId=7&storeId=1&date=2025-01-12", nil)
	req.Header.Set(middleware.UserIDHeader, "99")
	rec := httptest.NewRecorder()

	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_RequiresUser(t *testing.T) {
	uc := &fakeUseCase{}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/availability?serviceId=7&storeId=1&date=2025-01-13", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_InvalidQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{name: "missing service", query: "storeId=1&date=2025-01-13", message: msgMissingServiceID},
		{name: "missing store", query: "serviceId=7&date=2025-01-13", message: msgMissingStoreID},
		{name: "bad store", query: "serviceId=7&storeId=-1&date=2025-01-13", message: msgInvalidStoreID},
		{name: "missing date", query: "serviceId=7&storeId=1", message: msgMissingDate},
		{name: "malformed date", query: "serviceId=7&storeId=1&date=13.01.2025", message: msgInvalidDate},
		{name: "zero duration", query: "serviceId=7&storeId=1&date=2025-01-13&duration=0", message: msgInvalidDuration},
		{name: "negative duration", query: "serviceId=7&storeId=1&date=2025-01-13&duration=-30", message: msgInvalidDuration},
		{name: "bad staff", query: "serviceId=7&storeId=1&date=2025-01-13&staffId=x", message: msgInvalidStaffID},
		{name: "bad addons", query: "serviceId=7&storeId=1&date=2025-01-13&addonIds=1,,2", message: msgInvalidAddonIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			req := httptest.NewRequest(http.MethodGet, "/api/availability?"+tt.query, nil)
			req.Header.Set(middleware.UserIDHeader, "99")
			rec := httptest.NewRecorder()

			newRouter(uc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["message"])
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: getAvailableSlots.ErrStoreNotFound, wantStatus: http.StatusNotFound},
		{err: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{err: getAvailableSlots.ErrStaffNotFound, wantStatus: http.StatusNotFound},
		{err: getAvailableSlots.ErrAddonNotFound, wantStatus: http.StatusNotFound},
		{err: errors.Join(getAvailableSlots.ErrInternal, errors.New("connection refused")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			req := httptest.NewRequest(http.MethodGet, "/api/availability?serviceId=7&storeId=1&date=2025-01-13", nil)
			req.Header.Set(middleware.UserIDHeader, "99")
			rec := httptest.NewRecorder()

			newRouter(uc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandlePublic_UsesSlug(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Slots: []domain.TimeSlot{
		{Time: time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC), StaffID: 1, StaffName: "Anna"},
	}}}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/public/store/glow-nyc/availability?serviceId=7&date=2025-01-13&duration=30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"time":"2025-01-13T14:00:00Z","staffId":1,"staffName":"Anna"}]`, rec.Body.String())
	assert.Equal(t, "glow-nyc", uc.got.StoreSlug)
	assert.Zero(t, uc.got.StoreID)
	assert.Zero(t, uc.got.UserID)
}

func TestHandlePublic_StoreNotFound(t *testing.T) {
	uc := &fakeUseCase{err: getAvailableSlots.ErrStoreNotFound}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/public/store/unknown/availability?serviceId=7&date=2025-01-13", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
