package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	storeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeStores struct {
	store *domain.Store
	hours []*domain.BusinessHours
}

func (f *fakeStores) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	if f.store == nil || f.store.ID != id {
		return nil, storeRepo.ErrStoreNotFound
	}
	return f.store, nil
}

func (f *fakeStores) GetBusinessHours(context.Context, int64) ([]*domain.BusinessHours, error) {
	return f.hours, nil
}

type fakeStaff struct {
	staff *domain.Staff
	rules []*domain.StaffAvailabilityRule
}

func (f *fakeStaff) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	if f.staff == nil || f.staff.ID != id {
		return nil, staffRepo.ErrStaffNotFound
	}
	return f.staff, nil
}

func (f *fakeStaff) GetAvailabilityRules(context.Context, int64) ([]*domain.StaffAvailabilityRule, error) {
	return f.rules, nil
}

type fakeServices struct {
	service *domain.Service
	addons  []*domain.Addon
}

func (f *fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeServices) GetAddonsByIDs(_ context.Context, _ int64, ids []int64) ([]*domain.Addon, error) {
	result := make([]*domain.Addon, 0)
	for _, a := range f.addons {
		for _, id := range ids {
			if a.ID == id {
				result = append(result, a)
			}
		}
	}
	return result, nil
}

type fakeAppointments struct {
	existing  []*domain.Appointment
	created   []*domain.Appointment
	from, to  time.Time
	inTx      bool
	createErr error
}

func (f *fakeAppointments) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = int64(100 + len(f.created))
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAppointments) GetForStaffOnDate(ctx context.Context, _, _ int64, from, to time.Time) ([]*domain.Appointment, error) {
	f.from, f.to = from, to
	f.inTx, _ = ctx.Value(txMarker{}).(bool)
	return f.existing, nil
}

type txMarker struct{}

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

type fakeNotifier struct {
	sent []*notificationservice.AppointmentConfirmation
	err  error
}

func (n *fakeNotifier) SendAppointmentConfirmation(_ context.Context, c *notificationservice.AppointmentConfirmation) error {
	n.sent = append(n.sent, c)
	return n.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	stores       *fakeStores
	staff        *fakeStaff
	services     *fakeServices
	appointments *fakeAppointments
	tx           *fakeTxManager
	notifier     *fakeNotifier
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		stores: &fakeStores{
			store: &domain.Store{ID: 1, Name: "Downtown", Timezone: "America/New_York", IsActive: true, CalendarIntervalMinutes: ptr.Ptr(30)},
			hours: []*domain.BusinessHours{
				{StoreID: 1, DayOfWeek: int(time.Monday), OpenTime: "09:00", CloseTime: "17:00"},
				{StoreID: 1, DayOfWeek: int(time.Sunday), IsClosed: true},
			},
		},
		staff:        &fakeStaff{staff: &domain.Staff{ID: 2, StoreID: 1, Name: "Anna", IsActive: true}},
		services:     &fakeServices{service: &domain.Service{ID: 10, StoreID: 1, Name: "Haircut", DurationMinutes: 30, IsActive: true}},
		appointments: &fakeAppointments{},
		tx:           &fakeTxManager{},
		notifier:     &fakeNotifier{},
	}
	f.services.addons = []*domain.Addon{{ID: 50, ServiceID: 10, Name: "Wash", DurationMinutes: 30}}

	f.uc = NewUseCase(f.stores, f.staff, f.services, f.appointments, f.notifier, f.tx, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)}
	return f
}

// 11:00 EST в понедельник
var mondayEleven = time.Date(2025, 1, 13, 16, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{UserID: 77, StoreID: 1, ServiceID: 10, StaffID: 2, StartsAt: mondayEleven}
}

func TestExecute_CreatesConfirmedAppointment(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.AddonIDs = []int64{50}
	req.Notes = ptr.Ptr("first visit")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, f.appointments.created, 1)
	created := f.appointments.created[0]
	assert.Equal(t, mondayEleven, created.Date)
	assert.Equal(t, 60, created.DurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, int64(77), created.CustomerID)

	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "11:00", resp.LocalStartTime.String())
	assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), resp.LocalDate)
	assert.Equal(t, "EST", resp.TimezoneAbbr)
	assert.Equal(t, "confirmed", resp.Status)

	assert.True(t, f.appointments.inTx, "conflict check must run inside the transaction")
	assert.Equal(t, time.Date(2025, 1, 13, 5, 0, 0, 0, time.UTC).Add(-12*time.Hour), f.appointments.from)
	assert.Equal(t, time.Date(2025, 1, 14, 5, 0, 0, 0, time.UTC), f.appointments.to)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "2025-01-13 11:00", f.notifier.sent[0].LocalStartsAt)
}

func TestExecute_OverlapIsConflict(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{{
		ID: 9, Date: time.Date(2025, 1, 13, 15, 30, 0, 0, time.UTC), DurationMinutes: 60, Status: domain.StatusPending,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.appointments.created)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_AdjacentAndCancelledDoNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{
		{ID: 1, Date: time.Date(2025, 1, 13, 15, 0, 0, 0, time.UTC), DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, Date: time.Date(2025, 1, 13, 16, 30, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusConfirmed},
		{ID: 3, Date: time.Date(2025, 1, 13, 16, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, f.appointments.created, 1)
}

func TestExecute_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("sms gateway down")

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_FallBackRepeatedHour(t *testing.T) {
	// 2 ноября 2025 в Нью-Йорке час 01:00-02:00 проходит дважды: сначала EDT, потом EST
	tests := []struct {
		name     string
		startsAt time.Time
		wantAbbr string
	}{
		{name: "first 01:00", startsAt: time.Date(2025, 11, 2, 5, 0, 0, 0, time.UTC), wantAbbr: "EDT"},
		{name: "second 01:00", startsAt: time.Date(2025, 11, 2, 6, 0, 0, 0, time.UTC), wantAbbr: "EST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.stores.hours[1] = &domain.BusinessHours{StoreID: 1, DayOfWeek: int(time.Sunday), OpenTime: "00:00", CloseTime: "03:00"}
			req := validRequest()
			req.StartsAt = tt.startsAt

			resp, err := f.uc.Execute(context.Background(), req)

			require.NoError(t, err)
			require.Len(t, f.appointments.created, 1)
			assert.Equal(t, tt.startsAt, f.appointments.created[0].Date)
			assert.Equal(t, "01:00", resp.LocalStartTime.String())
			assert.Equal(t, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), resp.LocalDate)
			assert.Equal(t, tt.wantAbbr, resp.TimezoneAbbr)

			// 25-часовые сутки: 00:00 EDT .. 00:00 EST следующего дня
			assert.Equal(t, time.Date(2025, 11, 2, 4, 0, 0, 0, time.UTC).Add(-12*time.Hour), f.appointments.from)
			assert.Equal(t, time.Date(2025, 11, 3, 5, 0, 0, 0, time.UTC), f.appointments.to)
		})
	}
}

func TestExecute_FallBackSecondHourIsFreeAfterFirst(t *testing.T) {
	f := newFixture()
	f.stores.hours[1] = &domain.BusinessHours{StoreID: 1, DayOfWeek: int(time.Sunday), OpenTime: "00:00", CloseTime: "03:00"}
	f.appointments.existing = []*domain.Appointment{{
		ID: 1, Date: time.Date(2025, 11, 2, 5, 0, 0, 0, time.UTC), DurationMinutes: 60, Status: domain.StatusConfirmed,
	}}
	req := validRequest()
	req.StartsAt = time.Date(2025, 11, 2, 6, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, req.StartsAt, f.appointments.created[0].Date)

	// тот же локальный час, но первое его прохождение уже занято
	f = newFixture()
	f.stores.hours[1] = &domain.BusinessHours{StoreID: 1, DayOfWeek: int(time.Sunday), OpenTime: "00:00", CloseTime: "03:00"}
	f.appointments.existing = []*domain.Appointment{{
		ID: 1, Date: time.Date(2025, 11, 2, 5, 0, 0, 0, time.UTC), DurationMinutes: 60, Status: domain.StatusConfirmed,
	}}
	req.StartsAt = time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC)

	_, err = f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AcceptsOffsetInstant(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartsAt = time.Date(2025, 1, 13, 11, 0, 0, 0, time.FixedZone("EST", -5*60*60))

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, mondayEleven, f.appointments.created[0].Date)
	assert.Equal(t, time.UTC, f.appointments.created[0].Date.Location())
}

func TestExecute_SlotValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture, req *Request)
		wantErr error
	}{
		{
			name:    "off the grid",
			mutate:  func(_ *fixture, req *Request) { req.StartsAt = mondayEleven.Add(10 * time.Minute) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "does not fit before closing",
			mutate: func(_ *fixture, req *Request) {
				req.StartsAt = time.Date(2025, 1, 13, 21, 30, 0, 0, time.UTC)
				req.AddonIDs = []int64{50}
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "closed day",
			mutate: func(_ *fixture, req *Request) {
				req.StartsAt = time.Date(2025, 1, 12, 16, 0, 0, 0, time.UTC)
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "outside staff rule",
			mutate: func(f *fixture, _ *Request) {
				f.staff.rules = []*domain.StaffAvailabilityRule{
					{StaffID: 2, DayOfWeek: int(time.Monday), StartTime: "13:00", EndTime: "17:00"},
				}
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "in the past",
			mutate: func(f *fixture, _ *Request) {
				f.uc.timeProvider = fixedTime{now: time.Date(2025, 1, 13, 17, 0, 0, 0, time.UTC)}
			},
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "seconds off the grid",
			mutate:  func(_ *fixture, req *Request) { req.StartsAt = mondayEleven.Add(30 * time.Second) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "unknown staff",
			mutate:  func(_ *fixture, req *Request) { req.StaffID = 3 },
			wantErr: ErrStaffNotFound,
		},
		{
			name:    "unknown addon",
			mutate:  func(_ *fixture, req *Request) { req.AddonIDs = []int64{51} },
			wantErr: ErrAddonNotFound,
		},
		{
			name:    "store without timezone",
			mutate:  func(f *fixture, _ *Request) { f.stores.store.Timezone = "" },
			wantErr: ErrStoreNotConfigured,
		},
		{
			name:    "inactive service",
			mutate:  func(f *fixture, _ *Request) { f.services.service.IsActive = false },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "missing start",
			mutate:  func(_ *fixture, req *Request) { req.StartsAt = time.Time{} },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(f, req)

			resp, err := f.uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments.created)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_StorageErrorOnCreate(t *testing.T) {
	f := newFixture()
	dbErr := errors.New("disk full")
	f.appointments.createErr = dbErr

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)
}
