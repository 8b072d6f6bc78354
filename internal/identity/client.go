package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "radagast/internal/errors"
)

type User struct {
	ID               int    `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Status           string `json:"status"`
	DefaultAddressID *uint  `json:"defaultAddressId"`
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

// ResolveUser fetches the user profile, including its default shipping
// address id when one is configured.
func (c *Client) ResolveUser(ctx context.Context, userID int) (*User, error) {
	url := fmt.Sprintf("%s/api/v1/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating user request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("identity service unreachable", zap.Int("userId", userID), zap.Error(err))
		return nil, apperrors.NewUnavailableError("identity service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID))
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("identity service returned unexpected status",
			zap.Int("userId", userID), zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("identity service returned status %d", resp.StatusCode), nil)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperrors.NewUnavailableError("decoding identity response", err)
	}

	return &user, nil
}
