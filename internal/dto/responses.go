package dto

import "github.com/mvaldes/pizza-store-api/internal/models"

// MessageResponse is the body for operations that only report an outcome
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ClearCartResponse reports how many items a cart clear removed. Clearing an
// absent or empty cart is a success with a zero count.
type ClearCartResponse struct {
	Message      string `json:"message"`
	Success      bool   `json:"success"`
	ItemsRemoved int    `json:"itemsRemoved"`
}

// DecreaseQuantityResponse reports whether a decrease deleted the item
// because the quantity would have dropped to zero or below.
type DecreaseQuantityResponse struct {
	Message     string            `json:"message"`
	Success     bool              `json:"success"`
	ItemRemoved bool              `json:"itemRemoved"`
	Item        *CartItemResponse `json:"item,omitempty"`
}

// AuthResponse carries a freshly issued bearer token and the user it belongs to
type AuthResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"tokenType"`
	ExpiresIn int         `json:"expiresIn"`
	User      models.User `json:"user"`
}
