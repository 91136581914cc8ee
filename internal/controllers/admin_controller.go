package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/services"
)

// AdminController handles store-wide inspection endpoints
type AdminController interface {
	// GetAllOrders lists every order in the store
	GetAllOrders(ctx *gin.Context)
	// GetOrdersByUserID lists a given user's orders
	GetOrdersByUserID(ctx *gin.Context)
	// GetAllUsers lists every registered user
	GetAllUsers(ctx *gin.Context)
	// GetUserByID retrieves any user's profile
	GetUserByID(ctx *gin.Context)
}

type adminController struct {
	orders services.OrderService
	admin  services.AdminService
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(orders services.OrderService, admin services.AdminService) AdminController {
	return &adminController{orders: orders, admin: admin}
}

// GetAllOrders godoc
// @Summary Get all orders
// @Description List every order in the store, newest first
// @Tags admin
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/orders [get]
func (c *adminController) GetAllOrders(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	orders, err := c.orders.GetAllOrders(ctx.Request.Context(), actor)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrdersByUserID godoc
// @Summary Get a user's orders
// @Description List all orders placed by a given user
// @Tags admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} models.Order
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/users/{userId}/orders [get]
func (c *adminController) GetOrdersByUserID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	orders, err := c.orders.GetOrdersByUserID(ctx.Request.Context(), actor, ctx.Param("userId"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetAllUsers godoc
// @Summary Get all users
// @Description List every registered user
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/users [get]
func (c *adminController) GetAllUsers(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	users, err := c.admin.GetAllUsers(ctx.Request.Context(), actor)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Get any user's profile
// @Tags admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.User
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/admin/users/{userId} [get]
func (c *adminController) GetUserByID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	user, err := c.admin.GetUserByID(ctx.Request.Context(), actor, ctx.Param("userId"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
