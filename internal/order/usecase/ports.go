package usecase

import (
	"context"
	"time"

	"radagast/internal/catalog"
	"radagast/internal/domain"
	"radagast/internal/identity"
	"radagast/internal/payment"
)

type IdentityClient interface {
	ResolveUser(ctx context.Context, userID int) (*identity.User, error)
}

type CatalogClient interface {
	GetProduct(ctx context.Context, productID int) (*catalog.Product, error)
	GetInventory(ctx context.Context, productID int) (*catalog.Inventory, error)
	ApplyInventoryOperation(ctx context.Context, productID int, op catalog.InventoryOperation, quantity int) (*catalog.Inventory, error)
}

type PaymentClient interface {
	CreateTransaction(ctx context.Context, req payment.TransactionRequest) (*payment.Transaction, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.OrderStatus) error
	UpdateTransactionID(ctx context.Context, id uint, transactionID string) error
}
