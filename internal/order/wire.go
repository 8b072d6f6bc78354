package order

import (
	"database/sql"

	"go.uber.org/zap"

	"radagast/internal/catalog"
	"radagast/internal/config"
	"radagast/internal/identity"
	"radagast/internal/infrastructure/metrics"
	"radagast/internal/order/controller"
	"radagast/internal/order/repository"
	"radagast/internal/order/usecase"
	"radagast/internal/payment"
)

func NewModule(db *sql.DB, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *controller.OrderController {
	identityClient := identity.NewClient(cfg.Clients.IdentityBaseURL, cfg.Clients.Timeout, logger)
	catalogClient := catalog.NewClient(cfg.Clients.CatalogBaseURL, cfg.Clients.Timeout, logger)
	paymentClient := payment.NewClient(cfg.Clients.PaymentBaseURL, cfg.Clients.Timeout, logger)

	itemRepo := repository.NewMySQLOrderItemRepository(db)
	orderRepo := repository.NewMySQLOrderRepository(db, itemRepo)

	checkoutUC := usecase.NewCheckoutUseCase(
		identityClient,
		catalogClient,
		paymentClient,
		orderRepo,
		m,
		logger,
		cfg.Checkout.ShippingCost,
		cfg.Checkout.Currency,
		cfg.Checkout.PaymentMethod,
	)
	statusUC := usecase.NewStatusUseCase(orderRepo, catalogClient, m, logger)
	queryUC := usecase.NewQueryUseCase(orderRepo)

	return controller.NewOrderController(checkoutUC, statusUC, queryUC, logger)
}
