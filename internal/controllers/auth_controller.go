package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

// AuthController handles registration, login and profile lookup
type AuthController interface {
	// Register creates a new user account
	Register(ctx *gin.Context)
	// Login verifies credentials and issues a bearer token
	Login(ctx *gin.Context)
	// Me returns the authenticated user's profile
	Me(ctx *gin.Context)
}

type authController struct {
	service services.AuthService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(service services.AuthService) AuthController {
	return &authController{service: service}
}

// Register godoc
// @Summary Register a new account
// @Description Create a user account. New accounts always get the User role.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} models.APIError
// @Router /api/auth/register [post]
func (c *authController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.service.Register(ctx.Request.Context(), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a signed bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/auth/login [post]
func (c *authController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), req)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Get my profile
// @Description Get the authenticated user's own profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/auth/me [get]
func (c *authController) Me(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	user, err := c.service.GetUserByID(ctx.Request.Context(), actor.UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
