package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	storeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeAppointments struct {
	items     map[int64]*domain.Appointment
	cancelErr error
	cancelled []int64
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointments) Cancel(_ context.Context, id int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	a := f.items[id]
	a.Status = domain.StatusCancelled
	a.CancellationReason = ptr.Ptr(reason)
	a.CancelledAt = ptr.Ptr(time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC))
	return nil
}

type fakeStores struct{ store *domain.Store }

func (f *fakeStores) GetByID(context.Context, int64) (*domain.Store, error) {
	if f.store == nil {
		return nil, storeRepo.ErrStoreNotFound
	}
	return f.store, nil
}

func newService() (*Service, *fakeAppointments) {
	repo := &fakeAppointments{items: map[int64]*domain.Appointment{
		1: {ID: 1, StoreID: 1, StaffID: 2, CustomerID: 77, ServiceID: 10,
			Date: time.Date(2025, 7, 14, 14, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusConfirmed},
		2: {ID: 2, StoreID: 1, StaffID: 2, CustomerID: 77, ServiceID: 10,
			Date: time.Date(2025, 7, 14, 15, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusCompleted},
	}}
	stores := &fakeStores{store: &domain.Store{ID: 1, Timezone: "America/New_York"}}
	return NewService(repo, stores, logger.NewNop()), repo
}

func TestGetByID_LocalTimeOfStore(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), 1, 77)

	require.NoError(t, err)
	assert.Equal(t, "2025-07-14", resp.LocalDate)
	assert.Equal(t, "10:00", resp.LocalStartTime)
	assert.Equal(t, "EDT", resp.TimezoneAbbr)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_Errors(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 99, 77)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByID(context.Background(), 1, 78)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 77, CancellationReason: "  sick  "})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "sick", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "2025-01-12T10:00:00Z", *resp.CancelledAt)
}

func TestCancel_Errors(t *testing.T) {
	t.Run("completed appointment", func(t *testing.T) {
		svc, repo := newService()
		_, err := svc.Cancel(context.Background(), 2, &models.CancelAppointmentRequest{UserID: 77})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("foreign appointment", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 5})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("reason too long", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			UserID: 77, CancellationReason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		svc, repo := newService()
		repo.cancelErr = appointmentRepo.ErrCannotCancel
		_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 77})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newService()
		dbErr := errors.New("connection refused")
		repo.cancelErr = dbErr
		_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 77})
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorIs(t, err, dbErr)
	})
}
