package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mvaldes/pizza-store-api/internal/models"
)

// CartItemToppingResponse is a topping selection with its current price
type CartItemToppingResponse struct {
	ToppingID   string          `json:"toppingId"`
	ToppingName string          `json:"toppingName"`
	Price       decimal.Decimal `json:"price"`
}

// CartItemResponse is a cart line item. Every price field is computed from
// the current catalog at read time; nothing here is stored.
type CartItemResponse struct {
	ID                  string                    `json:"id"`
	CartID              string                    `json:"cartId"`
	PizzaVariantID      string                    `json:"pizzaVariantId"`
	PizzaName           string                    `json:"pizzaName"`
	PizzaSize           string                    `json:"pizzaSize"`
	BasePrice           decimal.Decimal           `json:"basePrice"`
	Quantity            int                       `json:"quantity"`
	SpecialInstructions string                    `json:"specialInstructions"`
	Toppings            []CartItemToppingResponse `json:"toppings"`
	ToppingsTotal       decimal.Decimal           `json:"toppingsTotal"`
	ItemPrice           decimal.Decimal           `json:"itemPrice"`
	SubTotal            decimal.Decimal           `json:"subTotal"`
}

// CartResponse is a user's cart with aggregate totals
type CartResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	Items         []CartItemResponse `json:"items"`
	SubTotal      decimal.Decimal    `json:"subTotal"`
	Total         decimal.Decimal    `json:"total"`
	ItemCount     int                `json:"itemCount"`
	TotalQuantity int                `json:"totalQuantity"`
}

// NewCartItemResponse projects a cart item with its variant and toppings
// preloaded into a response with live pricing.
func NewCartItemResponse(item *models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:                  item.ID,
		CartID:              item.CartID,
		PizzaVariantID:      item.PizzaVariantID,
		Quantity:            item.Quantity,
		SpecialInstructions: item.SpecialInstructions,
		Toppings:            make([]CartItemToppingResponse, 0, len(item.Toppings)),
		ToppingsTotal:       item.ToppingsTotal(),
		ItemPrice:           item.ItemPrice(),
		SubTotal:            item.Subtotal(),
	}
	if item.PizzaVariant != nil {
		resp.PizzaSize = string(item.PizzaVariant.Size)
		resp.BasePrice = item.PizzaVariant.Price
		if item.PizzaVariant.Pizza != nil {
			resp.PizzaName = item.PizzaVariant.Pizza.Name
		}
	}
	for _, t := range item.Toppings {
		toppingResp := CartItemToppingResponse{ToppingID: t.ToppingID}
		if t.Topping != nil {
			toppingResp.ToppingName = t.Topping.Name
			toppingResp.Price = t.Topping.Price
		}
		resp.Toppings = append(resp.Toppings, toppingResp)
	}
	return resp
}

// NewCartResponse projects a cart with fully preloaded items into a response
// with per-item and aggregate totals.
func NewCartResponse(cart *models.Cart) CartResponse {
	resp := CartResponse{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Items:    make([]CartItemResponse, 0, len(cart.Items)),
		SubTotal: decimal.Zero,
		Total:    decimal.Zero,
	}
	for i := range cart.Items {
		itemResp := NewCartItemResponse(&cart.Items[i])
		resp.Items = append(resp.Items, itemResp)
		resp.SubTotal = resp.SubTotal.Add(itemResp.SubTotal)
		resp.TotalQuantity += itemResp.Quantity
	}
	resp.Total = resp.SubTotal
	resp.ItemCount = len(resp.Items)
	return resp
}

// EmptyCartResponse is returned when the user has no cart row yet
func EmptyCartResponse(userID string) CartResponse {
	return CartResponse{
		UserID:   userID,
		Items:    []CartItemResponse{},
		SubTotal: decimal.Zero,
		Total:    decimal.Zero,
	}
}
