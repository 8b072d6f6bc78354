package domain

import "time"

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus maps a raw status string to the closed enumeration.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusPendingPayment, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// allowedTransitions is the single source of truth for the order lifecycle.
// CANCELLED is reachable from every non-terminal state; DELIVERED and
// CANCELLED are terminal.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPendingPayment: {
		OrderStatusConfirmed: true,
		OrderStatusCancelled: true,
	},
	OrderStatusConfirmed: {
		OrderStatusShipped:   true,
		OrderStatusCancelled: true,
	},
	OrderStatusShipped: {
		OrderStatusDelivered: true,
		OrderStatusCancelled: true,
	},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return allowedTransitions[s][target]
}

func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

type Order struct {
	ID                uint
	UserID            int
	ShippingAddressID uint
	TransactionID     *string
	Status            OrderStatus
	Subtotal          float64
	ShippingCost      float64
	Total             float64
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ComputeTotals derives subtotal and total from the item snapshot prices.
// Invariant: Total = Subtotal + ShippingCost.
func (o *Order) ComputeTotals(shippingCost float64) {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	o.Subtotal = subtotal
	o.ShippingCost = shippingCost
	o.Total = subtotal + shippingCost
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID int
	Quantity  int
	// UnitPrice is the sale price captured at checkout time. It never
	// changes afterwards, regardless of later catalog price updates.
	UnitPrice float64
}
