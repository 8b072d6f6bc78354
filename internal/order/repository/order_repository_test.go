package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
	"radagast/internal/testutil"
)

func TestNewMySQLOrderRepository(t *testing.T) {
	repo := NewMySQLOrderRepository(nil, nil)
	assert.NotNil(t, repo)
}

func newIntegrationRepos(t *testing.T) (*MySQLOrderRepository, func()) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)

	itemRepo := NewMySQLOrderItemRepository(db)
	repo := NewMySQLOrderRepository(db, itemRepo)

	return repo, func() { testutil.CleanupTestDB(t, db) }
}

func pendingOrder(userID int) *domain.Order {
	order := &domain.Order{
		UserID:            userID,
		ShippingAddressID: 11,
		Status:            domain.OrderStatusPendingPayment,
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 10000},
			{ProductID: 2, Quantity: 1, UnitPrice: 5000},
		},
	}
	order.ComputeTotals(5990)
	return order
}

func TestMySQLOrderRepository_CreateAndFindByID(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	ctx := context.Background()
	order := pendingOrder(1)

	orderID, err := repo.Create(ctx, order)
	require.NoError(t, err)
	assert.NotZero(t, orderID)
	assert.Equal(t, orderID, order.ID)

	found, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, found.ID)
	assert.Equal(t, 1, found.UserID)
	assert.Equal(t, uint(11), found.ShippingAddressID)
	assert.Nil(t, found.TransactionID)
	assert.Equal(t, domain.OrderStatusPendingPayment, found.Status)
	assert.Equal(t, 25000.0, found.Subtotal)
	assert.Equal(t, 30990.0, found.Total)

	require.Len(t, found.Items, 2)
	assert.Equal(t, 1, found.Items[0].ProductID)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, 10000.0, found.Items[0].UnitPrice)
	assert.Equal(t, orderID, found.Items[0].OrderID)
}

func TestMySQLOrderRepository_FindByID_NotFound(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	found, err := repo.FindByID(context.Background(), 999999)

	require.Error(t, err)
	assert.Nil(t, found)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %T", err)
}

func TestMySQLOrderRepository_FindAll(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	ctx := context.Background()
	_, err := repo.Create(ctx, pendingOrder(1))
	require.NoError(t, err)
	_, err = repo.Create(ctx, pendingOrder(2))
	require.NoError(t, err)

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, order := range orders {
		assert.NotEmpty(t, order.Items)
	}
}

func TestMySQLOrderRepository_FindByDateRange(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	ctx := context.Background()
	_, err := repo.Create(ctx, pendingOrder(1))
	require.NoError(t, err)

	now := time.Now()

	orders, err := repo.FindByDateRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = repo.FindByDateRange(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMySQLOrderRepository_UpdateStatus(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	ctx := context.Background()
	orderID, err := repo.Create(ctx, pendingOrder(1))
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, orderID, domain.OrderStatusPendingPayment, domain.OrderStatusConfirmed)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, found.Status)
}

func TestMySQLOrderRepository_UpdateStatus_StaleRead(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	ctx := context.Background()
	orderID, err := repo.Create(ctx, pendingOrder(1))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, orderID, domain.OrderStatusPendingPayment, domain.OrderStatusConfirmed))

	// a second writer still holding the PENDING_PAYMENT read loses the race
	err = repo.UpdateStatus(ctx, orderID, domain.OrderStatusPendingPayment, domain.OrderStatusCancelled)

	require.Error(t, err)
	_, ok := apperrors.IsConcurrentModificationError(err)
	assert.True(t, ok, "expected ConcurrentModificationError, got %T", err)

	found, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, found.Status)
}

func TestMySQLOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	err := repo.UpdateStatus(context.Background(), 999999,
		domain.OrderStatusPendingPayment, domain.OrderStatusConfirmed)

	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %T", err)
}

func TestMySQLOrderRepository_UpdateTransactionID(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	ctx := context.Background()
	orderID, err := repo.Create(ctx, pendingOrder(1))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTransactionID(ctx, orderID, "tx-777"))

	found, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, found.TransactionID)
	assert.Equal(t, "tx-777", *found.TransactionID)
}

func TestMySQLOrderRepository_UpdateTransactionID_NotFound(t *testing.T) {
	repo, cleanup := newIntegrationRepos(t)
	defer cleanup()

	err := repo.UpdateTransactionID(context.Background(), 999999, "tx-777")

	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %T", err)
}
