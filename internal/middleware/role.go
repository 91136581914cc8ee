package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvaldes/pizza-store-api/internal/models"
)

// RequireRole is a middleware that checks if the user has the required role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get user info from context (set by JWTAuth middleware)
		_, exists := c.Get(ContextUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized, "User not authenticated"))
			c.Abort()
			return
		}

		// Get role from JWT claims
		role, exists := c.Get(ContextUserRole)
		if !exists {
			c.JSON(http.StatusForbidden, models.NewAPIError(http.StatusForbidden, "User role not found in token"))
			c.Abort()
			return
		}

		// Check if user has required role
		userRole, ok := role.(string)
		if !ok {
			c.JSON(http.StatusForbidden, models.NewAPIError(http.StatusForbidden, "Invalid role format"))
			c.Abort()
			return
		}

		if userRole != requiredRole {
			c.JSON(http.StatusForbidden, models.NewAPIError(http.StatusForbidden, "Insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
