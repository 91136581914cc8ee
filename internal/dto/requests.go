package dto

// Request bodies bound and validated by gin. Enum fields use the custom
// validators registered at startup (pizzatype, pizzasize, orderstatus).
// Money comes in as float64 at the boundary and is converted to decimal
// before it reaches the domain.

// CreatePizzaVariantRequest adds a size+price configuration to a pizza
type CreatePizzaVariantRequest struct {
	Size  string  `json:"size" binding:"required,pizzasize"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

// CreatePizzaRequest creates a new pizza, optionally with initial variants
type CreatePizzaRequest struct {
	Name        string                      `json:"name" binding:"required,max=200"`
	Description string                      `json:"description" binding:"required,max=1000"`
	Type        string                      `json:"type" binding:"required,pizzatype"`
	ImageURL    string                      `json:"imageUrl" binding:"omitempty,max=500"`
	Variants    []CreatePizzaVariantRequest `json:"variants" binding:"omitempty,dive"`
}

// UpdatePizzaRequest updates a pizza's descriptive fields and availability
type UpdatePizzaRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=1000"`
	Type        string `json:"type" binding:"required,pizzatype"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,max=500"`
	IsAvailable *bool  `json:"isAvailable" binding:"required"`
}

// UpdatePizzaVariantRequest updates a variant's price and availability
type UpdatePizzaVariantRequest struct {
	Price       float64 `json:"price" binding:"required,gt=0"`
	IsAvailable *bool   `json:"isAvailable" binding:"required"`
}

// CreateToppingRequest creates a new topping
type CreateToppingRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

// UpdateToppingRequest updates a topping's fields
type UpdateToppingRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	IsAvailable *bool   `json:"isAvailable" binding:"required"`
}

// AddToCartRequest puts a pizza variant with optional toppings into the cart
type AddToCartRequest struct {
	PizzaVariantID      string   `json:"pizzaVariantId" binding:"required"`
	Quantity            int      `json:"quantity" binding:"required,gte=1,lte=50"`
	SpecialInstructions string   `json:"specialInstructions" binding:"omitempty,max=500"`
	ToppingIDs          []string `json:"toppingIds"`
}

// UpdateCartItemRequest replaces a cart item's quantity and instructions
type UpdateCartItemRequest struct {
	Quantity            int    `json:"quantity" binding:"required,gte=1,lte=50"`
	SpecialInstructions string `json:"specialInstructions" binding:"omitempty,max=500"`
}

// AdjustQuantityRequest shifts a cart item's quantity by a positive delta.
// An absent body means a delta of 1.
type AdjustQuantityRequest struct {
	Amount int `json:"amount" binding:"omitempty,gte=1"`
}

// UpdateOrderStatusRequest moves an order to a new lifecycle status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// RegisterRequest creates a new user account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
}

// LoginRequest authenticates an existing user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
