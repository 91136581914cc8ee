package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusTransition(t *testing.T) {
	testCases := []struct {
		name    string
		current OrderStatus
		next    OrderStatus
		wantErr bool
	}{
		{name: "pending to confirmed", current: OrderStatusPending, next: OrderStatusConfirmed},
		{name: "pending to cancelled", current: OrderStatusPending, next: OrderStatusCancelled},
		{name: "confirmed to preparing", current: OrderStatusConfirmed, next: OrderStatusPreparing},
		{name: "preparing to out for delivery", current: OrderStatusPreparing, next: OrderStatusOutForDelivery},
		{name: "out for delivery to delivered", current: OrderStatusOutForDelivery, next: OrderStatusDelivered},
		{name: "backwards jump allowed", current: OrderStatusOutForDelivery, next: OrderStatusConfirmed},
		{name: "same status is a no-op", current: OrderStatusPreparing, next: OrderStatusPreparing},
		{name: "same terminal status is a no-op", current: OrderStatusDelivered, next: OrderStatusDelivered},
		{name: "delivered is terminal", current: OrderStatusDelivered, next: OrderStatusPending, wantErr: true},
		{name: "cancelled is terminal", current: OrderStatusCancelled, next: OrderStatusConfirmed, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusTransition(tt.current, tt.next)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusPreparing.IsTerminal())
	assert.False(t, OrderStatusOutForDelivery.IsTerminal())
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Preparing")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusPreparing, status)

	_, err = ParseOrderStatus("Shipped")
	assert.Error(t, err)
}
