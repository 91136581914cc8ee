package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mvaldes/pizza-store-api/internal/models"
)

// Context keys set by JWTAuth and consumed by handlers and RequireRole
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// JWTAuth validates Bearer JWT access tokens and stashes the authenticated
// user's id and role in the gin context.
func JWTAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: Extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondWithAuthError(c, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		// Validate Bearer scheme format
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondWithAuthError(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondWithAuthError(c, "Bearer token is empty")
			return
		}

		// Parse and validate the JWT token
		claims, err := parseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			respondWithAuthError(c, err.Error())
			return
		}

		// Extract and validate required claims, setting context
		if err := extractAndSetClaims(c, claims); err != nil {
			respondWithAuthError(c, err.Error())
			return
		}

		c.Next()
	}
}

// ActorFromContext rebuilds the authenticated actor from the gin context.
// The boolean is false when JWTAuth did not run or did not authenticate.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return models.Actor{}, false
	}
	role, ok := c.Get(ContextUserRole)
	if !ok {
		return models.Actor{}, false
	}
	id, idOK := userID.(string)
	roleName, roleOK := role.(string)
	if !idOK || !roleOK || id == "" {
		return models.Actor{}, false
	}
	return models.Actor{UserID: id, Role: roleName}, true
}

// respondWithAuthError aborts the request with a 401 error body
func respondWithAuthError(c *gin.Context, description string) {
	c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized, description))
	c.Abort()
}

// parseJWTToken validates and parses a JWT token using HMAC signing method
// Returns the claims if valid, error otherwise
func parseJWTToken(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	// Parse with validation
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		// This protects against attacks where an attacker changes the algorithm header
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	return claims, nil
}

// parseAndValidateJWT parses the JWT and performs strict validation
func parseAndValidateJWT(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	claims, err := parseJWTToken(tokenString, jwtSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Validate token expiration (exp claim)
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	// Validate not before (nbf claim) if present
	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	// Validate issued at (iat claim) - prevents using tokens issued in the future
	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// extractAndSetClaims extracts user information from JWT claims and sets it in the Gin context
// This function follows strict validation rules to prevent security issues
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	// Extract UserID - this is REQUIRED for all tokens
	userID, err := extractUserID(claims)
	if err != nil {
		return err
	}
	c.Set(ContextUserID, userID)

	// Extract role claim - STRICTLY required, no defaults
	role, err := extractRole(claims)
	if err != nil {
		return err
	}
	c.Set(ContextUserRole, role)

	return nil
}

// extractUserID extracts and validates the user ID from JWT claims.
// User ids are UUID strings issued at registration time.
func extractUserID(claims jwt.MapClaims) (string, error) {
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("token missing required 'uid' claim. This token is not valid for this API")
	}
	return uid, nil
}

// extractRole extracts and validates the role from JWT claims
// All tokens must have an explicit role claim - no defaults are provided
func extractRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("token missing required 'role' claim. Tokens must explicitly specify user roles")
	}

	// Validate role against allowed values
	allowedRoles := map[string]bool{
		models.RoleAdmin: true,
		models.RoleUser:  true,
	}

	if !allowedRoles[role] {
		return "", fmt.Errorf("invalid role '%s'. Allowed roles: %s, %s", role, models.RoleAdmin, models.RoleUser)
	}

	return role, nil
}
