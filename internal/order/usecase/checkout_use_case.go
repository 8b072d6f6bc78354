package usecase

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"radagast/internal/catalog"
	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
	"radagast/internal/infrastructure/metrics"
	"radagast/internal/payment"
)

type CheckoutItem struct {
	ProductID int
	Quantity  int
}

// checkedItem pairs a requested item with the price snapshot taken during
// the stock check phase.
type checkedItem struct {
	CheckoutItem
	UnitPrice float64
}

type CheckoutUseCase struct {
	identityClient IdentityClient
	catalogClient  CatalogClient
	paymentClient  PaymentClient
	orderRepo      OrderRepository
	metrics        *metrics.Metrics
	logger         *zap.Logger
	shippingCost   float64
	currency       string
	paymentMethod  string
}

func NewCheckoutUseCase(
	identityClient IdentityClient,
	catalogClient CatalogClient,
	paymentClient PaymentClient,
	orderRepo OrderRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	shippingCost float64,
	currency string,
	paymentMethod string,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		identityClient: identityClient,
		catalogClient:  catalogClient,
		paymentClient:  paymentClient,
		orderRepo:      orderRepo,
		metrics:        m,
		logger:         logger,
		shippingCost:   shippingCost,
		currency:       currency,
		paymentMethod:  paymentMethod,
	}
}

// CreateOrder runs the checkout sequence: validate, resolve user, check
// stock, reserve, persist, pay. There is no shared transaction across the
// collaborators, so every step that fails after a reservation succeeded
// compensates with RELEASE calls before returning.
func (uc *CheckoutUseCase) CreateOrder(ctx context.Context, userID int, items []CheckoutItem) (*domain.Order, error) {
	uc.metrics.CheckoutAttempts.Inc()
	timer := time.Now()
	defer func() {
		uc.metrics.CheckoutDuration.Observe(time.Since(timer).Seconds())
	}()

	// Validation happens before any external call: an invalid request must
	// leave no side effects anywhere.
	if err := validateCheckoutInput(userID, items); err != nil {
		uc.metrics.CheckoutFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	uc.logger.Info("checkout started", zap.Int("userId", userID), zap.Int("itemCount", len(items)))

	user, err := uc.identityClient.ResolveUser(ctx, userID)
	if err != nil {
		uc.metrics.CheckoutFailures.WithLabelValues("user_resolution").Inc()
		return nil, err
	}
	if user.DefaultAddressID == nil {
		uc.metrics.CheckoutFailures.WithLabelValues("missing_address").Inc()
		return nil, apperrors.NewConflictError(
			"user " + strconv.Itoa(userID) + " has no default shipping address")
	}

	checked, err := uc.checkStock(ctx, items)
	if err != nil {
		uc.metrics.CheckoutFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	reservations, err := uc.reserveStock(ctx, checked)
	if err != nil {
		uc.metrics.CheckoutFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	order := &domain.Order{
		UserID:            userID,
		ShippingAddressID: *user.DefaultAddressID,
		Status:            domain.OrderStatusPendingPayment,
	}
	for _, item := range checked {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	order.ComputeTotals(uc.shippingCost)

	orderID, err := uc.orderRepo.Create(ctx, order)
	if err != nil {
		uc.releaseReservations(ctx, reservations)
		uc.metrics.CheckoutFailures.WithLabelValues("persistence").Inc()
		return nil, apperrors.NewInternalError("persisting order", err)
	}

	uc.logger.Info("order persisted",
		zap.Uint("orderId", orderID),
		zap.Float64("subtotal", order.Subtotal),
		zap.Float64("total", order.Total))

	tx, err := uc.paymentClient.CreateTransaction(ctx, payment.TransactionRequest{
		OrderID:  orderID,
		UserID:   userID,
		Amount:   order.Total,
		Currency: uc.currency,
		Method:   uc.paymentMethod,
	})
	if err != nil {
		// The order row stays in PENDING_PAYMENT so the caller can resume
		// payment by order id, but the reservations must not outlive the
		// failed attempt.
		uc.releaseReservations(ctx, reservations)
		uc.metrics.CheckoutFailures.WithLabelValues("payment").Inc()
		if pe, ok := apperrors.IsPaymentError(err); ok {
			pe.OrderID = orderID
			return nil, pe
		}
		return nil, err
	}

	if err := uc.orderRepo.UpdateTransactionID(ctx, orderID, tx.ID); err != nil {
		uc.metrics.CheckoutFailures.WithLabelValues("persistence").Inc()
		return nil, apperrors.NewInternalError("attaching transaction id", err)
	}
	order.TransactionID = &tx.ID

	uc.logger.Info("checkout completed",
		zap.Uint("orderId", orderID),
		zap.String("transactionId", tx.ID),
		zap.Float64("total", order.Total))

	return order, nil
}

func validateCheckoutInput(userID int, items []CheckoutItem) error {
	var details []apperrors.ValidationDetail

	if userID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId is required and must be a positive integer",
		})
	}

	if len(items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range items {
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "productId must be a positive integer",
			})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be at least 1",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

// checkStock fetches product and inventory for every item without mutating
// anything. The availability read here is only advisory: stock can drain
// between check and reserve, which reserveStock handles.
func (uc *CheckoutUseCase) checkStock(ctx context.Context, items []CheckoutItem) ([]checkedItem, error) {
	checked := make([]checkedItem, 0, len(items))

	for _, item := range items {
		product, err := uc.catalogClient.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		inventory, err := uc.catalogClient.GetInventory(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		if inventory.AvailableQuantity < item.Quantity {
			return nil, apperrors.NewInsufficientStockError(
				item.ProductID, item.Quantity, inventory.AvailableQuantity)
		}

		checked = append(checked, checkedItem{
			CheckoutItem: item,
			UnitPrice:    product.SalePrice,
		})
	}

	return checked, nil
}

// reserveStock performs the RESERVE calls, recording each success so that a
// failure part-way through can undo everything this attempt reserved.
func (uc *CheckoutUseCase) reserveStock(ctx context.Context, items []checkedItem) (*reservationLog, error) {
	log := &reservationLog{}

	for _, item := range items {
		_, err := uc.catalogClient.ApplyInventoryOperation(
			ctx, item.ProductID, catalog.OperationReserve, item.Quantity)
		if err != nil {
			uc.logger.Warn("reservation failed, compensating",
				zap.Int("productId", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Int("reservedSoFar", len(log.entries)),
				zap.Error(err))
			uc.releaseReservations(ctx, log)
			return nil, err
		}
		log.add(item.ProductID, item.Quantity)
	}

	return log, nil
}

// releaseReservations issues a RELEASE for every recorded reservation. A
// failed release is logged and counted, never fatal: the remaining entries
// are still released and reconciliation happens out of band.
func (uc *CheckoutUseCase) releaseReservations(ctx context.Context, log *reservationLog) {
	if log == nil || log.empty() {
		return
	}

	for _, entry := range log.entries {
		uc.metrics.Compensations.Inc()
		_, err := uc.catalogClient.ApplyInventoryOperation(
			ctx, entry.ProductID, catalog.OperationRelease, entry.Quantity)
		if err != nil {
			uc.metrics.CompensationFailures.Inc()
			uc.logger.Error("compensating release failed",
				zap.Int("productId", entry.ProductID),
				zap.Int("quantity", entry.Quantity),
				zap.Error(err))
		}
	}
}

func failureReason(err error) string {
	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		return "insufficient_stock"
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return "not_found"
	}
	if _, ok := apperrors.IsUnavailableError(err); ok {
		return "upstream_unavailable"
	}
	return "internal"
}
