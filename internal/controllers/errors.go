package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mvaldes/pizza-store-api/internal/middleware"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

// respondWithError maps domain errors onto HTTP status codes with a uniform
// body. Unrecognized errors are logged and reported as a generic 500 so
// internals never leak to clients.
func respondWithError(ctx *gin.Context, err error) {
	var (
		validationErr   *models.ValidationError
		notFoundErr     *models.NotFoundError
		unauthorizedErr *models.UnauthorizedError
		forbiddenErr    *models.ForbiddenError
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest, validationErr.Error()))
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(http.StatusNotFound, notFoundErr.Error()))
	case errors.As(err, &unauthorizedErr):
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized, unauthorizedErr.Error()))
	case errors.As(err, &forbiddenErr):
		ctx.JSON(http.StatusForbidden, models.NewAPIError(http.StatusForbidden, forbiddenErr.Error()))
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Unhandled error")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(http.StatusInternalServerError, "An error occurred processing your request"))
	}
}

// respondBindError reports a request binding or validation failure
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest, "Invalid request body: "+err.Error()))
}

// requireActor pulls the authenticated principal set by the JWT middleware;
// a missing principal means the route was wired without authentication
func requireActor(ctx *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized, "Authentication required"))
		return models.Actor{}, false
	}
	return actor, true
}
