package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "radagast/internal/errors"
)

type TransactionRequest struct {
	OrderID  uint    `json:"orderId"`
	UserID   int     `json:"userId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
}

type Transaction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CreateTransaction requests a payment transaction for the order total.
// Both rejection and unavailability are terminal for the current checkout
// attempt; the orchestrator never retries on its own because a duplicate
// request could charge the customer twice.
func (c *Client) CreateTransaction(ctx context.Context, txReq TransactionRequest) (*Transaction, error) {
	url := fmt.Sprintf("%s/api/v1/transactions", c.baseURL)

	body, err := json.Marshal(txReq)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating transaction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("payment service unreachable", zap.Uint("orderId", txReq.OrderID), zap.Error(err))
		return nil, apperrors.NewPaymentError(apperrors.PaymentUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.Warn("payment rejected",
			zap.Uint("orderId", txReq.OrderID), zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewPaymentError(apperrors.PaymentRejected,
			fmt.Errorf("payment service returned status %d", resp.StatusCode))
	default:
		c.logger.Warn("payment service failed",
			zap.Uint("orderId", txReq.OrderID), zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewPaymentError(apperrors.PaymentUnavailable,
			fmt.Errorf("payment service returned status %d", resp.StatusCode))
	}

	var tx Transaction
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return nil, apperrors.NewPaymentError(apperrors.PaymentUnavailable, err)
	}

	return &tx, nil
}
