package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	valid := []string{"PENDING_PAYMENT", "CONFIRMED", "SHIPPED", "DELIVERED", "CANCELLED"}
	for _, raw := range valid {
		status, ok := ParseOrderStatus(raw)
		assert.True(t, ok, "expected %q to parse", raw)
		assert.Equal(t, raw, status.String())
	}

	invalid := []string{"", "pending_payment", "PAID", "confirmed", "DONE"}
	for _, raw := range invalid {
		_, ok := ParseOrderStatus(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestOrderStatus_TransitionGraph(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPendingPayment: {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:      {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:        {OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusDelivered:      {},
		OrderStatusCancelled:      {},
	}

	all := []OrderStatus{
		OrderStatusPendingPayment, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}

	for from, targets := range allowed {
		allowedSet := make(map[OrderStatus]bool, len(targets))
		for _, to := range targets {
			allowedSet[to] = true
		}

		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "transition %s -> %s", from, to)
		}
	}
}

func TestOrderStatus_TerminalStates(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPendingPayment.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestOrder_ComputeTotals(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 10000},
		},
	}

	order.ComputeTotals(5990)

	assert.Equal(t, 20000.0, order.Subtotal)
	assert.Equal(t, 5990.0, order.ShippingCost)
	assert.Equal(t, 25990.0, order.Total)
}

func TestOrder_ComputeTotals_MultipleItems(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: 1500},
			{ProductID: 2, Quantity: 1, UnitPrice: 250.5},
		},
	}

	order.ComputeTotals(2990)

	assert.Equal(t, 4750.5, order.Subtotal)
	assert.Equal(t, order.Subtotal+order.ShippingCost, order.Total)
}

func TestOrder_ComputeTotals_NoItems(t *testing.T) {
	order := Order{}

	order.ComputeTotals(5990)

	assert.Equal(t, 0.0, order.Subtotal)
	assert.Equal(t, 5990.0, order.Total)
}
