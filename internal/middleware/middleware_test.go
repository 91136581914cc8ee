package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/pizza-store-api/internal/models"
)

var testSecret = []byte("test-jwt-secret-key-32-characters")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func newTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no actor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "role": actor.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthValidToken(t *testing.T) {
	router := newTestRouter()
	token := signToken(t, jwt.MapClaims{
		"uid":  "4c2f9b1e-0000-4000-8000-000000000000",
		"role": models.RoleUser,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "4c2f9b1e")
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newTestRouter()
	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthWrongScheme(t *testing.T) {
	router := newTestRouter()
	w := doRequest(router, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router := newTestRouter()
	token := signToken(t, jwt.MapClaims{
		"uid":  "4c2f9b1e-0000-4000-8000-000000000000",
		"role": models.RoleUser,
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthBadSignature(t *testing.T) {
	router := newTestRouter()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  "4c2f9b1e-0000-4000-8000-000000000000",
		"role": models.RoleUser,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMissingClaims(t *testing.T) {
	router := newTestRouter()

	// No uid claim
	token := signToken(t, jwt.MapClaims{
		"role": models.RoleUser,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No role claim
	token = signToken(t, jwt.MapClaims{
		"uid": "4c2f9b1e-0000-4000-8000-000000000000",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w = doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthUnknownRole(t *testing.T) {
	router := newTestRouter()
	token := signToken(t, jwt.MapClaims{
		"uid":  "4c2f9b1e-0000-4000-8000-000000000000",
		"role": "SuperAdmin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	adminToken := func(t *testing.T) string {
		return signToken(t, jwt.MapClaims{
			"uid":  "4c2f9b1e-0000-4000-8000-000000000001",
			"role": models.RoleAdmin,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
	}
	userToken := func(t *testing.T) string {
		return signToken(t, jwt.MapClaims{
			"uid":  "4c2f9b1e-0000-4000-8000-000000000002",
			"role": models.RoleUser,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
	}

	router := newTestRouter(RequireRole(models.RoleAdmin))

	w := doRequest(router, "Bearer "+adminToken(t))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "Bearer "+userToken(t))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
