package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/database"
	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/middleware"
	"github.com/mvaldes/pizza-store-api/internal/models"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

var (
	testJWTSecret      = []byte("test-jwt-secret-key-32-characters")
	registerValidators sync.Once
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		require.True(t, ok)
		require.NoError(t, v.RegisterValidation("pizzatype", func(fl validator.FieldLevel) bool {
			return models.PizzaType(fl.Field().String()).IsValid()
		}))
		require.NoError(t, v.RegisterValidation("pizzasize", func(fl validator.FieldLevel) bool {
			return models.PizzaSize(fl.Field().String()).IsValid()
		}))
		require.NoError(t, v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).IsValid()
		}))
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	authSvc := services.NewAuthService(db, testJWTSecret, time.Hour)
	pizzaSvc := services.NewPizzaService(db)
	toppingSvc := services.NewToppingService(db)
	cartSvc := services.NewCartService(db)
	orderSvc := services.NewOrderService(db, nil)
	adminSvc := services.NewAdminService(db)

	authCtrl := NewAuthController(authSvc)
	pizzaCtrl := NewPizzaController(pizzaSvc)
	toppingCtrl := NewToppingController(toppingSvc)
	cartCtrl := NewCartController(cartSvc)
	orderCtrl := NewOrderController(orderSvc)
	adminCtrl := NewAdminController(orderSvc, adminSvc)

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/pizza", pizzaCtrl.GetAllPizzas)
	api.GET("/pizza/type/:type", pizzaCtrl.GetPizzasByType)
	api.GET("/pizza/:id", pizzaCtrl.GetPizzaByID)
	api.GET("/topping", toppingCtrl.GetAllToppings)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(testJWTSecret))
	authed.GET("/auth/me", authCtrl.Me)
	authed.GET("/cart", cartCtrl.GetCart)
	authed.DELETE("/cart", cartCtrl.ClearCart)
	authed.POST("/cart/items", cartCtrl.AddItem)
	authed.DELETE("/cart/items/:itemId", cartCtrl.RemoveItem)
	authed.POST("/order/checkout", orderCtrl.Checkout)
	authed.GET("/order", orderCtrl.GetMyOrders)
	authed.GET("/order/:id", orderCtrl.GetOrderByID)
	authed.POST("/order/:id/cancel", orderCtrl.CancelOrder)

	admin := authed.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.POST("/pizza", pizzaCtrl.CreatePizza)
	admin.POST("/topping", toppingCtrl.CreateTopping)
	admin.PUT("/admin/orders/:id/status", orderCtrl.UpdateStatus)
	admin.GET("/admin/users", adminCtrl.GetAllUsers)

	return router, db
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	w := doJSON(router, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:     email,
		Password:  "correct-horse",
		FirstName: "Test",
		LastName:  "User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func loginAdmin(t *testing.T, router *gin.Engine, db *gorm.DB) string {
	registerAndLogin(t, router, "admin@example.com")
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", models.RoleAdmin).Error)
	// Log in again so the token carries the Admin role
	w := doJSON(router, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestRegisterLoginAndMe(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerAndLogin(t, router, "alice@example.com")

	w := doJSON(router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "alice@example.com", user.Email)

	// Password hashes never appear in responses
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestGetPizzasByType(t *testing.T) {
	router, db := setupTestRouter(t)
	adminToken := loginAdmin(t, router, db)

	w := doJSON(router, http.MethodPost, "/api/pizza", adminToken, dto.CreatePizzaRequest{
		Name:        "Margherita",
		Description: "Classic tomato and mozzarella",
		Type:        "Margherita",
		Variants: []dto.CreatePizzaVariantRequest{
			{Size: "Medium", Price: 12.99},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/pizza/type/Margherita", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pizzas []models.Pizza
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pizzas))
	require.Len(t, pizzas, 1)
	assert.Equal(t, "Margherita", pizzas[0].Name)

	w = doJSON(router, http.MethodGet, "/api/pizza/type/Supreme", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pizzas))
	assert.Empty(t, pizzas)

	w = doJSON(router, http.MethodGet, "/api/pizza/type/Calzone", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartEndpointsRequireAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/order/checkout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpointsRejectUsers(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerAndLogin(t, router, "alice@example.com")

	w := doJSON(router, http.MethodPost, "/api/pizza", token, dto.CreatePizzaRequest{
		Name:        "Margherita",
		Description: "Classic",
		Type:        "Margherita",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)
	adminToken := loginAdmin(t, router, db)
	userToken := registerAndLogin(t, router, "alice@example.com")

	// Admin builds the catalog
	w := doJSON(router, http.MethodPost, "/api/pizza", adminToken, dto.CreatePizzaRequest{
		Name:        "Margherita",
		Description: "Classic tomato and mozzarella",
		Type:        "Margherita",
		Variants: []dto.CreatePizzaVariantRequest{
			{Size: "Medium", Price: 12.99},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pizza models.Pizza
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pizza))
	require.Len(t, pizza.Variants, 1)

	w = doJSON(router, http.MethodPost, "/api/topping", adminToken, dto.CreateToppingRequest{
		Name:  "Pepperoni",
		Price: 1.50,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var topping models.Topping
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &topping))

	// Customer fills the cart and checks out
	w = doJSON(router, http.MethodPost, "/api/cart/items", userToken, dto.AddToCartRequest{
		PizzaVariantID: pizza.Variants[0].ID,
		Quantity:       2,
		ToppingIDs:     []string{topping.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/order/checkout", userToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	// (12.99 + 1.50) * 2
	assert.Equal(t, "28.98", order.TotalPrice.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// The cart is now empty
	w = doJSON(router, http.MethodGet, "/api/cart", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart dto.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Zero(t, cart.ItemCount)

	// Admin walks the order through its lifecycle
	w = doJSON(router, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", adminToken,
		dto.UpdateOrderStatusRequest{Status: "Confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", adminToken,
		dto.UpdateOrderStatusRequest{Status: "Delivered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Terminal orders reject further changes with a 400 body
	w = doJSON(router, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", adminToken,
		dto.UpdateOrderStatusRequest{Status: "Preparing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.False(t, apiErr.Timestamp.IsZero())
}

func TestCheckoutEmptyCartOverHTTP(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerAndLogin(t, router, "alice@example.com")

	w := doJSON(router, http.MethodPost, "/api/order/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestInvalidStatusRejectedByBinding(t *testing.T) {
	router, db := setupTestRouter(t)
	adminToken := loginAdmin(t, router, db)

	w := doJSON(router, http.MethodPut, "/api/admin/orders/some-id/status", adminToken,
		map[string]string{"status": "Teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
