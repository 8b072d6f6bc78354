package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"radagast/internal/catalog"
	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
	"radagast/internal/infrastructure/metrics"
)

// ReleaseFailure describes one compensating RELEASE call that failed during
// a cancellation. These are reported as warnings, not errors: the status
// change already happened and inventory reconciliation is retried out of band.
type ReleaseFailure struct {
	ProductID int
	Quantity  int
	Reason    string
}

type StatusUpdateResult struct {
	Order           *domain.Order
	ReleaseFailures []ReleaseFailure
}

type StatusUseCase struct {
	orderRepo     OrderRepository
	catalogClient CatalogClient
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

func NewStatusUseCase(
	orderRepo OrderRepository,
	catalogClient CatalogClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatusUseCase {
	return &StatusUseCase{
		orderRepo:     orderRepo,
		catalogClient: catalogClient,
		metrics:       m,
		logger:        logger,
	}
}

// UpdateOrderStatus applies one transition of the order state machine.
// Cancelling an order whose stock was already committed (CONFIRMED or
// SHIPPED) releases every item quantity as compensation.
func (uc *StatusUseCase) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus domain.OrderStatus) (*StatusUpdateResult, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		uc.logger.Warn("invalid status transition rejected",
			zap.Uint("orderId", orderID),
			zap.String("from", order.Status.String()),
			zap.String("to", newStatus.String()))
		return nil, apperrors.NewInvalidStatusError(order.Status.String(), newStatus.String())
	}

	priorStatus := order.Status
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, priorStatus, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	uc.logger.Info("order status updated",
		zap.Uint("orderId", orderID),
		zap.String("from", priorStatus.String()),
		zap.String("to", newStatus.String()))

	result := &StatusUpdateResult{Order: order}

	if newStatus == domain.OrderStatusCancelled && stockWasCommitted(priorStatus) {
		result.ReleaseFailures = uc.releaseOrderItems(ctx, order)
	}

	return result, nil
}

// stockWasCommitted reports whether reservations for the order are still
// held and must be returned on cancellation. Orders cancelled while in
// PENDING_PAYMENT had their reservations released by the checkout path.
func stockWasCommitted(status domain.OrderStatus) bool {
	return status == domain.OrderStatusConfirmed || status == domain.OrderStatusShipped
}

func (uc *StatusUseCase) releaseOrderItems(ctx context.Context, order *domain.Order) []ReleaseFailure {
	var failures []ReleaseFailure

	for _, item := range order.Items {
		uc.metrics.Compensations.Inc()
		_, err := uc.catalogClient.ApplyInventoryOperation(
			ctx, item.ProductID, catalog.OperationRelease, item.Quantity)
		if err != nil {
			uc.metrics.CompensationFailures.Inc()
			uc.logger.Error("release on cancellation failed",
				zap.Uint("orderId", order.ID),
				zap.Int("productId", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
			failures = append(failures, ReleaseFailure{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    err.Error(),
			})
		}
	}

	if len(failures) > 0 {
		uc.logger.Warn("cancellation completed with pending inventory reconciliation",
			zap.Uint("orderId", order.ID),
			zap.String("failures", fmt.Sprintf("%d of %d releases failed", len(failures), len(order.Items))))
	}

	return failures
}
