package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart business limits
const (
	// MaxCartItems caps the number of line items a single cart may hold
	MaxCartItems = 20
	// MaxItemQuantity caps the quantity of a single cart line item
	MaxItemQuantity = 50
	// MaxSpecialInstructionsLen caps the free-text note on a cart line item
	MaxSpecialInstructionsLen = 500
)

// Cart holds a user's pending pizza selections. One cart per user, created
// lazily on the first add. Carts carry an optimistic row version bumped on
// every item mutation; orders intentionally do not (they are only touched by
// single-row status updates).
type Cart struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string     `gorm:"not null;uniqueIndex;type:varchar(36)" json:"userId"`
	RowVersion uint       `gorm:"not null;default:0" json:"-"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem is one pizza selection inside a cart. No price is stored here:
// prices are always derived from the current catalog when the cart is read.
type CartItem struct {
	ID                  string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CartID              string            `gorm:"not null;index;type:varchar(36)" json:"cartId"`
	Cart                *Cart             `gorm:"foreignKey:CartID" json:"-"`
	PizzaVariantID      string            `gorm:"not null;type:varchar(36)" json:"pizzaVariantId"`
	PizzaVariant        *PizzaVariant     `gorm:"foreignKey:PizzaVariantID" json:"-"`
	Quantity            int               `gorm:"not null" json:"quantity"`
	SpecialInstructions string            `gorm:"type:varchar(500)" json:"specialInstructions"`
	Toppings            []CartItemTopping `gorm:"foreignKey:CartItemID" json:"toppings"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// CartItemTopping links a cart item to a selected topping. Unique per
// (CartItemID, ToppingID) pair.
type CartItemTopping struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CartItemID string    `gorm:"not null;index:idx_cart_item_topping,unique;type:varchar(36)" json:"cartItemId"`
	ToppingID  string    `gorm:"not null;index:idx_cart_item_topping,unique;type:varchar(36)" json:"toppingId"`
	Topping    *Topping  `gorm:"foreignKey:ToppingID" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ItemPrice is the live unit price of the item: variant price plus the sum of
// the current topping prices. Requires PizzaVariant and Toppings preloaded.
func (ci *CartItem) ItemPrice() decimal.Decimal {
	price := decimal.Zero
	if ci.PizzaVariant != nil {
		price = ci.PizzaVariant.Price
	}
	for _, t := range ci.Toppings {
		if t.Topping != nil {
			price = price.Add(t.Topping.Price)
		}
	}
	return price
}

// Subtotal is the live unit price multiplied by the quantity.
func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.ItemPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// ToppingsTotal sums the current prices of the item's toppings.
func (ci *CartItem) ToppingsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range ci.Toppings {
		if t.Topping != nil {
			total = total.Add(t.Topping.Price)
		}
	}
	return total
}
