package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client клиент сервиса уведомлений
// Пустой baseURL выключает отправку: методы возвращают ErrDisabled
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// Enabled возвращает true, если адрес сервиса настроен
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// SendAppointmentConfirmation отправляет подтверждение созданной записи
func (c *Client) SendAppointmentConfirmation(ctx context.Context, confirmation *AppointmentConfirmation) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	body, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %w", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/appointment-confirmed", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		c.log.Info("Confirmation for appointment id=%d accepted by notification service", confirmation.AppointmentID)
		return nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}
