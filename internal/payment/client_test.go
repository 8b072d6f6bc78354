package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "radagast/internal/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 2*time.Second, zap.NewNop())
}

func testRequest() TransactionRequest {
	return TransactionRequest{
		OrderID:  7,
		UserID:   1,
		Amount:   25990,
		Currency: "CLP",
		Method:   "CREDIT_CARD",
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/transactions", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var req TransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(7), req.OrderID)
		assert.Equal(t, 25990.0, req.Amount)
		assert.Equal(t, "CLP", req.Currency)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Transaction{ID: "tx-001", Status: "APPROVED"})
	}))
	defer server.Close()

	tx, err := newTestClient(server.URL).CreateTransaction(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "tx-001", tx.ID)
	assert.Equal(t, "APPROVED", tx.Status)
}

func TestCreateTransaction_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	tx, err := newTestClient(server.URL).CreateTransaction(context.Background(), testRequest())

	require.Error(t, err)
	assert.Nil(t, tx)

	pe, ok := apperrors.IsPaymentError(err)
	require.True(t, ok, "expected PaymentError, got %T", err)
	assert.Equal(t, apperrors.PaymentRejected, pe.Reason)
}

func TestCreateTransaction_ServerFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateTransaction(context.Background(), testRequest())

	require.Error(t, err)
	pe, ok := apperrors.IsPaymentError(err)
	require.True(t, ok, "expected PaymentError, got %T", err)
	assert.Equal(t, apperrors.PaymentUnavailable, pe.Reason)
}

func TestCreateTransaction_TransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).CreateTransaction(context.Background(), testRequest())

	require.Error(t, err)
	pe, ok := apperrors.IsPaymentError(err)
	require.True(t, ok, "expected PaymentError, got %T", err)
	assert.Equal(t, apperrors.PaymentUnavailable, pe.Reason)
}
