package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := [][2]OrderStatus{
		{OrderPending, OrderAccepted},
		{OrderPending, OrderCancelled},
		{OrderAccepted, OrderPreparing},
		{OrderAccepted, OrderCancelled},
		{OrderPreparing, OrderOutForDelivery},
		{OrderPreparing, OrderCancelled},
		{OrderOutForDelivery, OrderDelivered},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s should be allowed", pair[0], pair[1])
	}

	denied := [][2]OrderStatus{
		{OrderPending, OrderDelivered},
		{OrderPending, OrderOutForDelivery},
		{OrderOutForDelivery, OrderCancelled},
		{OrderDelivered, OrderPending},
		{OrderCancelled, OrderAccepted},
		{OrderDelivered, OrderDelivered},
	}
	for _, pair := range denied {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s should be denied", pair[0], pair[1])
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderPreparing))
	assert.False(t, ValidOrderStatus(OrderStatus("SHIPPED")))
}
