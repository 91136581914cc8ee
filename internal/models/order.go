package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through its delivery lifecycle
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "OutForDelivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// MinimumOrderTotal is the smallest total an order may be checked out with.
var MinimumOrderTotal = decimal.NewFromFloat(5.00)

// IsValid reports whether the value is one of the known order statuses
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus converts a string into an OrderStatus, rejecting unknown values
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown order status: %q", s)
	}
	return status, nil
}

// ValidateStatusTransition rejects transitions out of a terminal status.
// Staying in the same status is a no-op and always allowed.
func ValidateStatusTransition(current, next OrderStatus) error {
	if current == next {
		return nil
	}
	if current.IsTerminal() {
		return NewValidationError(fmt.Sprintf(
			"Cannot transition from %s to %s. %s orders cannot be changed", current, next, current))
	}
	return nil
}

// Order is the immutable record produced by checking out a cart. TotalPrice
// and every item field are frozen at creation; only Status and its timestamp
// fields may change afterwards, and orders are never deleted.
type Order struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string          `gorm:"not null;index;type:varchar(36)" json:"userId"`
	TotalPrice  decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"totalPrice"`
	Status      OrderStatus     `gorm:"not null;type:varchar(20)" json:"status"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	CancelledAt *time.Time      `json:"cancelledAt,omitempty"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderItem is a frozen snapshot of a cart item at checkout time. The variant
// reference is nullable so the row survives later catalog changes; the name,
// size and prices recorded here never change.
type OrderItem struct {
	ID                    string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID               string            `gorm:"not null;index;type:varchar(36)" json:"orderId"`
	PizzaVariantID        *string           `gorm:"type:varchar(36)" json:"pizzaVariantId,omitempty"`
	PizzaNameAtOrder      string            `gorm:"not null;type:varchar(200)" json:"pizzaNameAtOrder"`
	PizzaSizeAtOrder      string            `gorm:"not null;type:varchar(20)" json:"pizzaSizeAtOrder"`
	PizzaBasePriceAtOrder decimal.Decimal   `gorm:"not null;type:decimal(10,2)" json:"pizzaBasePriceAtOrder"`
	Quantity              int               `gorm:"not null" json:"quantity"`
	SpecialInstructions   string            `gorm:"type:varchar(500)" json:"specialInstructions"`
	SubtotalAtOrder       decimal.Decimal   `gorm:"not null;type:decimal(10,2)" json:"subtotalAtOrder"`
	Toppings              []OrderItemTopping `gorm:"foreignKey:OrderItemID" json:"toppings"`
	CreatedAt             time.Time         `json:"createdAt"`
}

// OrderItemTopping is a frozen snapshot of a topping selection at checkout time.
type OrderItemTopping struct {
	ID                  string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderItemID         string          `gorm:"not null;index;type:varchar(36)" json:"orderItemId"`
	ToppingID           *string         `gorm:"type:varchar(36)" json:"toppingId,omitempty"`
	ToppingNameAtOrder  string          `gorm:"not null;type:varchar(100)" json:"toppingNameAtOrder"`
	ToppingPriceAtOrder decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"toppingPriceAtOrder"`
	CreatedAt           time.Time       `json:"createdAt"`
}
