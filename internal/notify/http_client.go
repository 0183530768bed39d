package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "sportsync/pkg/app_errors"
	"sportsync/pkg/logger"

	"go.uber.org/zap"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type scheduleRequest struct {
	At      time.Time `json:"at"`
	Payload Payload   `json:"payload"`
}

func (c *HTTPClient) ScheduleAt(ctx context.Context, instant time.Time, payload Payload) error {
	body, err := json.Marshal(scheduleRequest{At: instant, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal schedule request: %w", err)
	}

	url := fmt.Sprintf("%s/notifications/schedule", c.baseURL)
	if err := c.post(ctx, url, body); err != nil {
		return err
	}
	return nil
}

func (c *HTTPClient) CancelAll(ctx context.Context, userID int) error {
	body, err := json.Marshal(map[string]int{"userId": userID})
	if err != nil {
		return fmt.Errorf("marshal cancel request: %w", err)
	}

	url := fmt.Sprintf("%s/notifications/cancel-all", c.baseURL)
	return c.post(ctx, url, body)
}

func (c *HTTPClient) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithComponent("notify").Warn("notification collaborator unreachable", zap.Error(err))
		return apperrors.ErrNetwork
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway returned status %d", resp.StatusCode)
	}
	return nil
}
