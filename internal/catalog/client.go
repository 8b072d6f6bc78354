package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "radagast/internal/errors"
)

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SalePrice   float64 `json:"salePrice"`
}

type Inventory struct {
	ProductID         int `json:"productId"`
	AvailableQuantity int `json:"availableQuantity"`
}

type InventoryOperation string

const (
	OperationReserve   InventoryOperation = "RESERVE"
	OperationRelease   InventoryOperation = "RELEASE"
	OperationIncrement InventoryOperation = "INCREMENT"
	OperationDecrement InventoryOperation = "DECREMENT"
)

type inventoryOperationRequest struct {
	Type     InventoryOperation `json:"type"`
	Quantity int                `json:"quantity"`
}

type catalogErrorResponse struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	AvailableQuantity int    `json:"availableQuantity"`
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

func (c *Client) GetProduct(ctx context.Context, productID int) (*Product, error) {
	url := fmt.Sprintf("%s/api/v1/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating product request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog service unreachable", zap.Int("productId", productID), zap.Error(err))
		return nil, apperrors.NewUnavailableError("catalog service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("catalog service returned status %d", resp.StatusCode), nil)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, apperrors.NewUnavailableError("decoding product response", err)
	}

	return &product, nil
}

func (c *Client) GetInventory(ctx context.Context, productID int) (*Inventory, error) {
	url := fmt.Sprintf("%s/api/v1/products/%d/inventory", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating inventory request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog service unreachable", zap.Int("productId", productID), zap.Error(err))
		return nil, apperrors.NewUnavailableError("catalog service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("inventory for product %d not found", productID))
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("catalog service returned status %d", resp.StatusCode), nil)
	}

	var inventory Inventory
	if err := json.NewDecoder(resp.Body).Decode(&inventory); err != nil {
		return nil, apperrors.NewUnavailableError("decoding inventory response", err)
	}

	return &inventory, nil
}

// ApplyInventoryOperation posts a single atomic mutation. Each call stands
// alone: a successful RESERVE is not tied to any later order write, which is
// why callers must compensate with RELEASE themselves.
func (c *Client) ApplyInventoryOperation(ctx context.Context, productID int, op InventoryOperation, quantity int) (*Inventory, error) {
	url := fmt.Sprintf("%s/api/v1/products/%d/inventory/operations", c.baseURL, productID)

	body, err := json.Marshal(inventoryOperationRequest{Type: op, Quantity: quantity})
	if err != nil {
		return nil, fmt.Errorf("encoding inventory operation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating inventory operation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog service unreachable",
			zap.Int("productId", productID), zap.String("operation", string(op)), zap.Error(err))
		return nil, apperrors.NewUnavailableError("catalog service unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	case http.StatusBadRequest, http.StatusConflict:
		var errBody catalogErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil &&
			errBody.Code == "INSUFFICIENT_STOCK" {
			return nil, apperrors.NewInsufficientStockError(productID, quantity, errBody.AvailableQuantity)
		}
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("catalog rejected %s for product %d", op, productID), nil)
	default:
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("catalog service returned status %d", resp.StatusCode), nil)
	}

	var inventory Inventory
	if err := json.NewDecoder(resp.Body).Decode(&inventory); err != nil {
		return nil, apperrors.NewUnavailableError("decoding inventory response", err)
	}

	c.logger.Debug("inventory operation applied",
		zap.Int("productId", productID),
		zap.String("operation", string(op)),
		zap.Int("quantity", quantity),
		zap.Int("availableQuantity", inventory.AvailableQuantity))

	return &inventory, nil
}
