package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

// ToppingController handles HTTP requests for the topping catalog
type ToppingController interface {
	// GetAllToppings retrieves all available toppings
	GetAllToppings(ctx *gin.Context)
	// GetToppingByID retrieves a topping by its ID
	GetToppingByID(ctx *gin.Context)
	// CreateTopping creates a new topping (admin)
	CreateTopping(ctx *gin.Context)
	// UpdateTopping updates an existing topping (admin)
	UpdateTopping(ctx *gin.Context)
	// DeleteTopping retires a topping (admin)
	DeleteTopping(ctx *gin.Context)
}

type toppingController struct {
	service services.ToppingService
}

// NewToppingController creates a new instance of ToppingController
func NewToppingController(service services.ToppingService) ToppingController {
	return &toppingController{service: service}
}

// GetAllToppings godoc
// @Summary Get all toppings
// @Description Get every topping currently available for ordering
// @Tags toppings
// @Produce json
// @Success 200 {array} models.Topping
// @Router /api/topping [get]
func (c *toppingController) GetAllToppings(ctx *gin.Context) {
	toppings, err := c.service.GetAllToppings(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toppings)
}

// GetToppingByID godoc
// @Summary Get topping by ID
// @Description Get a single topping
// @Tags toppings
// @Produce json
// @Param id path string true "Topping ID"
// @Success 200 {object} models.Topping
// @Failure 404 {object} models.APIError
// @Router /api/topping/{id} [get]
func (c *toppingController) GetToppingByID(ctx *gin.Context) {
	topping, err := c.service.GetToppingByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, topping)
}

// CreateTopping godoc
// @Summary Create a new topping
// @Description Create a new topping with a name and price
// @Tags toppings
// @Accept json
// @Produce json
// @Param topping body dto.CreateToppingRequest true "Topping to create"
// @Success 201 {object} models.Topping
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/topping [post]
func (c *toppingController) CreateTopping(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateToppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	topping, err := c.service.CreateTopping(ctx.Request.Context(), actor, req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, topping)
}

// UpdateTopping godoc
// @Summary Update a topping
// @Description Update a topping's name, price and availability
// @Tags toppings
// @Accept json
// @Produce json
// @Param id path string true "Topping ID"
// @Param topping body dto.UpdateToppingRequest true "Updated fields"
// @Success 200 {object} models.Topping
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/topping/{id} [put]
func (c *toppingController) UpdateTopping(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateToppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	topping, err := c.service.UpdateTopping(ctx.Request.Context(), actor, ctx.Param("id"), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, topping)
}

// DeleteTopping godoc
// @Summary Retire a topping
// @Description Mark a topping as unavailable. Past orders keep their snapshots.
// @Tags toppings
// @Param id path string true "Topping ID"
// @Success 204
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/topping/{id} [delete]
func (c *toppingController) DeleteTopping(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteTopping(ctx.Request.Context(), actor, ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
