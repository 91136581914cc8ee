package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

// CartController handles HTTP requests for the caller's shopping cart
type CartController interface {
	// GetCart retrieves the caller's cart with live pricing
	GetCart(ctx *gin.Context)
	// GetCartItem retrieves a single cart item
	GetCartItem(ctx *gin.Context)
	// AddItem adds a pizza with optional toppings to the cart
	AddItem(ctx *gin.Context)
	// UpdateItem replaces a cart item's quantity and instructions
	UpdateItem(ctx *gin.Context)
	// IncreaseQuantity raises a cart item's quantity
	IncreaseQuantity(ctx *gin.Context)
	// DecreaseQuantity lowers a cart item's quantity, removing it at zero
	DecreaseQuantity(ctx *gin.Context)
	// RemoveItem deletes a cart item
	RemoveItem(ctx *gin.Context)
	// ClearCart removes every item from the cart
	ClearCart(ctx *gin.Context)
}

type cartController struct {
	service services.CartService
}

// NewCartController creates a new instance of CartController
func NewCartController(service services.CartService) CartController {
	return &cartController{service: service}
}

// GetCart godoc
// @Summary Get my cart
// @Description Get the caller's cart. Prices are computed from the current catalog on every read.
// @Tags cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart [get]
func (c *cartController) GetCart(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	cart, err := c.service.GetUserCart(ctx.Request.Context(), actor)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// GetCartItem godoc
// @Summary Get a cart item
// @Description Get one item from the caller's cart
// @Tags cart
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} dto.CartItemResponse
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart/items/{itemId} [get]
func (c *cartController) GetCartItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	item, err := c.service.GetCartItem(ctx.Request.Context(), actor, ctx.Param("itemId"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// AddItem godoc
// @Summary Add a pizza to my cart
// @Description Add a pizza variant with optional toppings as a new line item. Repeating a variant creates a separate line.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddToCartRequest true "Item to add"
// @Success 201 {object} dto.CartItemResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart/items [post]
func (c *cartController) AddItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	item, err := c.service.AddPizzaToCart(ctx.Request.Context(), actor, req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update a cart item
// @Description Replace a cart item's quantity and special instructions
// @Tags cart
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Param item body dto.UpdateCartItemRequest true "Updated fields"
// @Success 200 {object} dto.CartItemResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart/items/{itemId} [put]
func (c *cartController) UpdateItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	item, err := c.service.UpdateCartItem(ctx.Request.Context(), actor, ctx.Param("itemId"), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// IncreaseQuantity godoc
// @Summary Increase a cart item's quantity
// @Description Raise the quantity by the given amount. An empty body raises it by one.
// @Tags cart
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Param body body dto.AdjustQuantityRequest false "Amount to add"
// @Success 200 {object} dto.CartItemResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart/items/{itemId}/increase [patch]
func (c *cartController) IncreaseQuantity(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	amount, ok := bindAdjustAmount(ctx)
	if !ok {
		return
	}

	item, err := c.service.IncreaseQuantity(ctx.Request.Context(), actor, ctx.Param("itemId"), amount)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// DecreaseQuantity godoc
// @Summary Decrease a cart item's quantity
// @Description Lower the quantity by the given amount. Reaching zero removes the item.
// @Tags cart
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Param body body dto.AdjustQuantityRequest false "Amount to subtract"
// @Success 200 {object} dto.DecreaseQuantityResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart/items/{itemId}/decrease [patch]
func (c *cartController) DecreaseQuantity(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	amount, ok := bindAdjustAmount(ctx)
	if !ok {
		return
	}

	result, err := c.service.DecreaseQuantity(ctx.Request.Context(), actor, ctx.Param("itemId"), amount)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// RemoveItem godoc
// @Summary Remove a cart item
// @Description Delete one item from the caller's cart
// @Tags cart
// @Param itemId path string true "Cart item ID"
// @Success 204
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart/items/{itemId} [delete]
func (c *cartController) RemoveItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if _, err := c.service.RemoveCartItem(ctx.Request.Context(), actor, ctx.Param("itemId")); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ClearCart godoc
// @Summary Clear my cart
// @Description Remove every item from the caller's cart. Clearing an empty cart succeeds.
// @Tags cart
// @Success 204
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart [delete]
func (c *cartController) ClearCart(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if _, err := c.service.ClearCart(ctx.Request.Context(), actor); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// bindAdjustAmount reads the optional quantity delta body; an absent or empty
// body means a delta of one
func bindAdjustAmount(ctx *gin.Context) (int, bool) {
	if ctx.Request.Body == nil || ctx.Request.ContentLength == 0 {
		return 1, true
	}
	var req dto.AdjustQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return 0, false
	}
	if req.Amount == 0 {
		return 1, true
	}
	return req.Amount, true
}
