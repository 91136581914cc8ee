package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

// OrderController handles HTTP requests for checkout and order lifecycle
type OrderController interface {
	// Checkout converts the caller's cart into an order
	Checkout(ctx *gin.Context)
	// GetMyOrders lists the caller's orders
	GetMyOrders(ctx *gin.Context)
	// GetOrderByID retrieves one order
	GetOrderByID(ctx *gin.Context)
	// CancelOrder cancels a Pending or Confirmed order owned by the caller
	CancelOrder(ctx *gin.Context)
	// UpdateStatus moves an order to a new lifecycle status (admin)
	UpdateStatus(ctx *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

// Checkout godoc
// @Summary Checkout my cart
// @Description Convert the caller's cart into an order. Prices are recomputed from the current catalog and frozen onto the order; the cart is emptied atomically.
// @Tags orders
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/order/checkout [post]
func (c *orderController) Checkout(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	order, err := c.service.Checkout(ctx.Request.Context(), actor)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetMyOrders godoc
// @Summary Get my orders
// @Description List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/order [get]
func (c *orderController) GetMyOrders(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	orders, err := c.service.GetMyOrders(ctx.Request.Context(), actor)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrderByID godoc
// @Summary Get order by ID
// @Description Get one order with its frozen item snapshots. Owners see their own orders; administrators see any.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/order/{id} [get]
func (c *orderController) GetOrderByID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	order, err := c.service.GetOrderByID(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel my order
// @Description Cancel an order that is still Pending or Confirmed
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/order/{id}/cancel [post]
func (c *orderController) CancelOrder(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	order, err := c.service.CancelOrder(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary Update order status
// @Description Move an order to a new lifecycle status. Delivered and Cancelled are terminal.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/orders/{id}/status [put]
func (c *orderController) UpdateStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	order, err := c.service.UpdateOrderStatus(ctx.Request.Context(), actor, ctx.Param("id"), status)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
