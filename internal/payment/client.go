package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "sportsync/pkg/app_errors"
	"sportsync/pkg/logger"

	"go.uber.org/zap"
)

// Confirmer 付款協作者。all-or-nothing：回 nil 才算付款完成，
// 其餘一律視為未付款，呼叫端絕不能在失敗後動名單。
type Confirmer interface {
	Confirm(ctx context.Context, eventID int, userID int) error
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type confirmRequest struct {
	EventID int `json:"eventId"`
	UserID  int `json:"userId"`
}

type confirmResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Confirm 對付款協作者做一次確認往返。
// 傳輸層錯誤回 ErrNetwork（可重試）；對方拒絕回 ErrPaymentFailed。
func (c *HTTPClient) Confirm(ctx context.Context, eventID int, userID int) error {
	body, err := json.Marshal(confirmRequest{EventID: eventID, UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal confirm request: %w", err)
	}

	url := fmt.Sprintf("%s/payments/confirm", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create confirm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithComponent("payment").Warn("payment collaborator unreachable", zap.Error(err))
		return apperrors.ErrNetwork
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.ErrNetwork
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.WithComponent("payment").Warn("payment declined",
			zap.Int("status", resp.StatusCode),
			zap.Int("event_id", eventID),
			zap.Int("user_id", userID))
		return apperrors.ErrPaymentFailed
	}

	var parsed confirmResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("parse confirm response: %w", err)
	}
	if !parsed.Success {
		return apperrors.ErrPaymentFailed
	}

	return nil
}
