package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

// PizzaController handles HTTP requests for the pizza catalog
type PizzaController interface {
	// GetAllPizzas retrieves the available menu
	GetAllPizzas(ctx *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(ctx *gin.Context)
	// GetPizzasByType retrieves pizzas of a given type
	GetPizzasByType(ctx *gin.Context)
	// CreatePizza creates a new pizza (admin)
	CreatePizza(ctx *gin.Context)
	// UpdatePizza updates an existing pizza (admin)
	UpdatePizza(ctx *gin.Context)
	// DeletePizza retires a pizza from the menu (admin)
	DeletePizza(ctx *gin.Context)
	// AddPizzaVariant adds a size configuration to a pizza (admin)
	AddPizzaVariant(ctx *gin.Context)
	// UpdatePizzaVariant updates a size configuration (admin)
	UpdatePizzaVariant(ctx *gin.Context)
	// DeletePizzaVariant retires a size configuration (admin)
	DeletePizzaVariant(ctx *gin.Context)
}

type pizzaController struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &pizzaController{service: service}
}

// GetAllPizzas godoc
// @Summary Get the pizza menu
// @Description Get all available pizzas with their available size variants
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.Pizza
// @Router /api/pizza [get]
func (c *pizzaController) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzasByType godoc
// @Summary Get pizzas by type
// @Description Get all available pizzas of the given type (Vegetarian, MeatLovers, Hawaiian, Veggie, Custom, Supreme, Margherita)
// @Tags pizzas
// @Produce json
// @Param type path string true "Pizza type"
// @Success 200 {array} models.Pizza
// @Failure 400 {object} models.APIError
// @Router /api/pizza/type/{type} [get]
func (c *pizzaController) GetPizzasByType(ctx *gin.Context) {
	pizzaType, err := models.ParsePizzaType(ctx.Param("type"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	pizzas, err := c.service.GetPizzasByType(ctx.Request.Context(), pizzaType)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza with all of its variants
// @Tags pizzas
// @Produce json
// @Param id path string true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Router /api/pizza/{id} [get]
func (c *pizzaController) GetPizzaByID(ctx *gin.Context) {
	pizza, err := c.service.GetPizzaByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza, optionally with initial size variants
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body dto.CreatePizzaRequest true "Pizza to create"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/pizza [post]
func (c *pizzaController) CreatePizza(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreatePizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	pizza, err := c.service.CreatePizza(ctx.Request.Context(), actor, req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pizza)
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Update a pizza's name, description, type, image and availability
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path string true "Pizza ID"
// @Param pizza body dto.UpdatePizzaRequest true "Updated fields"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/pizza/{id} [put]
func (c *pizzaController) UpdatePizza(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	pizza, err := c.service.UpdatePizza(ctx.Request.Context(), actor, ctx.Param("id"), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// DeletePizza godoc
// @Summary Retire a pizza
// @Description Mark a pizza as unavailable. Past orders keep their snapshots.
// @Tags pizzas
// @Param id path string true "Pizza ID"
// @Success 204
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/pizza/{id} [delete]
func (c *pizzaController) DeletePizza(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.service.DeletePizza(ctx.Request.Context(), actor, ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddPizzaVariant godoc
// @Summary Add a pizza variant
// @Description Add a size and price configuration to a pizza. Each pizza may have at most one available variant per size.
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path string true "Pizza ID"
// @Param variant body dto.CreatePizzaVariantRequest true "Variant to add"
// @Success 201 {object} models.PizzaVariant
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/pizza/{id}/variants [post]
func (c *pizzaController) AddPizzaVariant(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreatePizzaVariantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	variant, err := c.service.AddPizzaVariant(ctx.Request.Context(), actor, ctx.Param("id"), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, variant)
}

// UpdatePizzaVariant godoc
// @Summary Update a pizza variant
// @Description Update a variant's price and availability
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path string true "Pizza ID"
// @Param variantId path string true "Variant ID"
// @Param variant body dto.UpdatePizzaVariantRequest true "Updated fields"
// @Success 200 {object} models.PizzaVariant
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/pizza/{id}/variants/{variantId} [put]
func (c *pizzaController) UpdatePizzaVariant(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePizzaVariantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	variant, err := c.service.UpdatePizzaVariant(ctx.Request.Context(), actor, ctx.Param("id"), ctx.Param("variantId"), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, variant)
}

// DeletePizzaVariant godoc
// @Summary Retire a pizza variant
// @Description Mark a variant as unavailable. Past orders keep their snapshots.
// @Tags pizzas
// @Param id path string true "Pizza ID"
// @Param variantId path string true "Variant ID"
// @Success 204
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/pizza/{id}/variants/{variantId} [delete]
func (c *pizzaController) DeletePizzaVariant(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.service.DeletePizzaVariant(ctx.Request.Context(), actor, ctx.Param("id"), ctx.Param("variantId")); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
