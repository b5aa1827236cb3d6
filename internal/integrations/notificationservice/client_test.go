package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func TestSendAppointmentConfirmation(t *testing.T) {
	var got AppointmentConfirmation
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/appointment-confirmed", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second, logger.NewNop())
	err := client.SendAppointmentConfirmation(context.Background(), &AppointmentConfirmation{
		AppointmentID: 5,
		CustomerID:    77,
		StartsAt:      time.Date(2025, 1, 13, 15, 0, 0, 0, time.UTC),
		LocalStartsAt: "2025-01-13 10:00",
		TimezoneAbbr:  "EST",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.AppointmentID)
	assert.Equal(t, "EST", got.TimezoneAbbr)
}

func TestSendAppointmentConfirmation_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"code":502,"message":"sms gateway down"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, logger.NewNop()).
		SendAppointmentConfirmation(context.Background(), &AppointmentConfirmation{AppointmentID: 1})

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "sms gateway down")
}

func TestSendAppointmentConfirmation_Disabled(t *testing.T) {
	client := NewClient("", time.Second, logger.NewNop())

	assert.False(t, client.Enabled())
	assert.ErrorIs(t, client.SendAppointmentConfirmation(context.Background(), &AppointmentConfirmation{}), ErrDisabled)
}
