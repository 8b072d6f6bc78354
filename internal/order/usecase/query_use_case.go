package usecase

import (
	"context"
	"time"

	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

// QueryUseCase serves pure reads with no side effects.
type QueryUseCase struct {
	orderRepo OrderRepository
}

func NewQueryUseCase(orderRepo OrderRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo}
}

// GetOrderByID returns (nil, nil) when the order does not exist; the HTTP
// boundary decides how absence is rendered.
func (uc *QueryUseCase) GetOrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (uc *QueryUseCase) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return uc.orderRepo.FindAll(ctx)
}

func (uc *QueryUseCase) GetOrdersByDate(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	return uc.orderRepo.FindByDateRange(ctx, from, to)
}
