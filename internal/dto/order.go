package dto

import (
	"time"

	"radagast/internal/domain"
)

type CreateOrderRequest struct {
	UserID int               `json:"userId"`
	Items  []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemDTO struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type OrderDTO struct {
	ID                uint           `json:"id"`
	UserID            int            `json:"userId"`
	ShippingAddressID uint           `json:"shippingAddressId"`
	TransactionID     *string        `json:"transactionId"`
	Status            string         `json:"status"`
	Subtotal          float64        `json:"subtotal"`
	ShippingCost      float64        `json:"shippingCost"`
	Total             float64        `json:"total"`
	Items             []OrderItemDTO `json:"items"`
	CreatedAt         time.Time      `json:"createdAt"`
}

func FromOrder(order *domain.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return OrderDTO{
		ID:                order.ID,
		UserID:            order.UserID,
		ShippingAddressID: order.ShippingAddressID,
		TransactionID:     order.TransactionID,
		Status:            order.Status.String(),
		Subtotal:          order.Subtotal,
		ShippingCost:      order.ShippingCost,
		Total:             order.Total,
		Items:             items,
		CreatedAt:         order.CreatedAt,
	}
}
