package usecase

import (
	"context"
	"time"

	"radagast/internal/catalog"
	"radagast/internal/domain"
	"radagast/internal/identity"
	"radagast/internal/payment"
)

// Mock implementations

type mockIdentityClient struct {
	ResolveUserFunc func(ctx context.Context, userID int) (*identity.User, error)
}

func (m *mockIdentityClient) ResolveUser(ctx context.Context, userID int) (*identity.User, error) {
	if m.ResolveUserFunc == nil {
		panic("unexpected call to ResolveUser")
	}
	return m.ResolveUserFunc(ctx, userID)
}

type mockCatalogClient struct {
	GetProductFunc              func(ctx context.Context, productID int) (*catalog.Product, error)
	GetInventoryFunc            func(ctx context.Context, productID int) (*catalog.Inventory, error)
	ApplyInventoryOperationFunc func(ctx context.Context, productID int, op catalog.InventoryOperation, quantity int) (*catalog.Inventory, error)
}

func (m *mockCatalogClient) GetProduct(ctx context.Context, productID int) (*catalog.Product, error) {
	if m.GetProductFunc == nil {
		panic("unexpected call to GetProduct")
	}
	return m.GetProductFunc(ctx, productID)
}

func (m *mockCatalogClient) GetInventory(ctx context.Context, productID int) (*catalog.Inventory, error) {
	if m.GetInventoryFunc == nil {
		panic("unexpected call to GetInventory")
	}
	return m.GetInventoryFunc(ctx, productID)
}

func (m *mockCatalogClient) ApplyInventoryOperation(ctx context.Context, productID int, op catalog.InventoryOperation, quantity int) (*catalog.Inventory, error) {
	if m.ApplyInventoryOperationFunc == nil {
		panic("unexpected call to ApplyInventoryOperation")
	}
	return m.ApplyInventoryOperationFunc(ctx, productID, op, quantity)
}

type mockPaymentClient struct {
	CreateTransactionFunc func(ctx context.Context, req payment.TransactionRequest) (*payment.Transaction, error)
}

func (m *mockPaymentClient) CreateTransaction(ctx context.Context, req payment.TransactionRequest) (*payment.Transaction, error) {
	if m.CreateTransactionFunc == nil {
		panic("unexpected call to CreateTransaction")
	}
	return m.CreateTransactionFunc(ctx, req)
}

type mockOrderRepository struct {
	CreateFunc              func(ctx context.Context, order *domain.Order) (uint, error)
	FindByIDFunc            func(ctx context.Context, id uint) (*domain.Order, error)
	FindAllFunc             func(ctx context.Context) ([]domain.Order, error)
	FindByDateRangeFunc     func(ctx context.Context, from, to time.Time) ([]domain.Order, error)
	UpdateStatusFunc        func(ctx context.Context, id uint, from, to domain.OrderStatus) error
	UpdateTransactionIDFunc func(ctx context.Context, id uint, transactionID string) error
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) (uint, error) {
	if m.CreateFunc == nil {
		panic("unexpected call to Create")
	}
	return m.CreateFunc(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	if m.FindByIDFunc == nil {
		panic("unexpected call to FindByID")
	}
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	if m.FindAllFunc == nil {
		panic("unexpected call to FindAll")
	}
	return m.FindAllFunc(ctx)
}

func (m *mockOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	if m.FindByDateRangeFunc == nil {
		panic("unexpected call to FindByDateRange")
	}
	return m.FindByDateRangeFunc(ctx, from, to)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.OrderStatus) error {
	if m.UpdateStatusFunc == nil {
		panic("unexpected call to UpdateStatus")
	}
	return m.UpdateStatusFunc(ctx, id, from, to)
}

func (m *mockOrderRepository) UpdateTransactionID(ctx context.Context, id uint, transactionID string) error {
	if m.UpdateTransactionIDFunc == nil {
		panic("unexpected call to UpdateTransactionID")
	}
	return m.UpdateTransactionIDFunc(ctx, id, transactionID)
}

// inventoryCall records one ApplyInventoryOperation invocation for
// asserting reserve/release pairing.
type inventoryCall struct {
	ProductID int
	Op        catalog.InventoryOperation
	Quantity  int
}
