package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/mvaldes/pizza-store-api/docs" // Import generated docs
	"github.com/mvaldes/pizza-store-api/internal/config"
	"github.com/mvaldes/pizza-store-api/internal/controllers"
	"github.com/mvaldes/pizza-store-api/internal/database"
	"github.com/mvaldes/pizza-store-api/internal/events"
	"github.com/mvaldes/pizza-store-api/internal/middleware"
	"github.com/mvaldes/pizza-store-api/internal/models"
	"github.com/mvaldes/pizza-store-api/internal/services"
)

var (
	db            *gorm.DB
	configuration *config.Config
	publisher     events.Publisher

	authController    controllers.AuthController
	pizzaController   controllers.PizzaController
	toppingController controllers.ToppingController
	cartController    controllers.CartController
	orderController   controllers.OrderController
	adminController   controllers.AdminController
)

// @title Pizza Store API
// @version 1.0
// @description Pizza ordering backend with catalog, cart, checkout and order lifecycle
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Register request validators for enum fields
	registerValidators()

	// Initialize database connection
	setupDatabase(configuration)

	// Connect the event publisher when a broker is configured
	setupPublisher(configuration)

	// Initialize services and controllers
	setupControllers(configuration)

	// Initialize Gin router
	var router *gin.Engine = setupRouter(configuration)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
	// An explicit LOG_LEVEL wins over the environment default
	if levelName := config.GetEnvWithDefault("LOG_LEVEL", ""); levelName != "" {
		if level, err := log.ParseLevel(levelName); err == nil {
			log.SetLevel(level)
		}
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// registerValidators wires the enum validators referenced by request binding tags
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	checkPanicErr(v.RegisterValidation("pizzatype", func(fl validator.FieldLevel) bool {
		return models.PizzaType(fl.Field().String()).IsValid()
	}))
	checkPanicErr(v.RegisterValidation("pizzasize", func(fl validator.FieldLevel) bool {
		return models.PizzaSize(fl.Field().String()).IsValid()
	}))
	checkPanicErr(v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).IsValid()
	}))
}

// setupDatabase connects, migrates and seeds the database
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	checkPanicErr(database.Seed(db, conf.AdminEmail, conf.AdminPassword))
}

// setupPublisher connects to the message broker; an empty URL disables events
func setupPublisher(conf *config.Config) {
	if conf.AMQPURL == "" {
		log.Info("AMQP_URL not set, order events disabled")
		return
	}
	p, err := events.NewAMQPPublisher(conf.AMQPURL)
	if err != nil {
		log.WithError(err).Warn("Could not connect to message broker, order events disabled")
		return
	}
	publisher = p
}

// setupControllers builds the service layer and its HTTP controllers
func setupControllers(conf *config.Config) {
	jwtSecret := []byte(conf.JWTSecret)
	tokenExpiry := time.Duration(conf.JWTExpiryHours) * time.Hour

	authService := services.NewAuthService(db, jwtSecret, tokenExpiry)
	pizzaService := services.NewPizzaService(db)
	toppingService := services.NewToppingService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, publisher)
	adminService := services.NewAdminService(db)

	authController = controllers.NewAuthController(authService)
	pizzaController = controllers.NewPizzaController(pizzaService)
	toppingController = controllers.NewToppingController(toppingService)
	cartController = controllers.NewCartController(cartService)
	orderController = controllers.NewOrderController(orderService)
	adminController = controllers.NewAdminController(orderService, adminService)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(conf *config.Config) *gin.Engine {
	router := gin.Default()

	setupRoutes(router, []byte(conf.JWTSecret))

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, jwtSecret []byte) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	api := router.Group("/api")
	{
		// Public catalog and authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		pizza := api.Group("/pizza")
		{
			pizza.GET("", pizzaController.GetAllPizzas)
			pizza.GET("/type/:type", pizzaController.GetPizzasByType)
			pizza.GET("/:id", pizzaController.GetPizzaByID)
		}

		topping := api.Group("/topping")
		{
			topping.GET("", toppingController.GetAllToppings)
			topping.GET("/:id", toppingController.GetToppingByID)
		}

		// Authenticated routes
		authed := api.Group("")
		authed.Use(middleware.JWTAuth(jwtSecret))
		{
			authed.GET("/auth/me", authController.Me)

			cart := authed.Group("/cart")
			{
				cart.GET("", cartController.GetCart)
				cart.DELETE("", cartController.ClearCart)
				cart.POST("/items", cartController.AddItem)
				cart.GET("/items/:itemId", cartController.GetCartItem)
				cart.PUT("/items/:itemId", cartController.UpdateItem)
				cart.DELETE("/items/:itemId", cartController.RemoveItem)
				cart.PATCH("/items/:itemId/increase", cartController.IncreaseQuantity)
				cart.PATCH("/items/:itemId/decrease", cartController.DecreaseQuantity)
			}

			order := authed.Group("/order")
			{
				order.POST("/checkout", orderController.Checkout)
				order.GET("", orderController.GetMyOrders)
				order.GET("/:id", orderController.GetOrderByID)
				order.POST("/:id/cancel", orderController.CancelOrder)
			}

			// Catalog management and store-wide inspection
			admin := authed.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/pizza", pizzaController.CreatePizza)
				admin.PUT("/pizza/:id", pizzaController.UpdatePizza)
				admin.DELETE("/pizza/:id", pizzaController.DeletePizza)
				admin.POST("/pizza/:id/variants", pizzaController.AddPizzaVariant)
				admin.PUT("/pizza/:id/variants/:variantId", pizzaController.UpdatePizzaVariant)
				admin.DELETE("/pizza/:id/variants/:variantId", pizzaController.DeletePizzaVariant)

				admin.POST("/topping", toppingController.CreateTopping)
				admin.PUT("/topping/:id", toppingController.UpdateTopping)
				admin.DELETE("/topping/:id", toppingController.DeleteTopping)

				admin.GET("/admin/orders", adminController.GetAllOrders)
				admin.PUT("/admin/orders/:id/status", orderController.UpdateStatus)
				admin.GET("/admin/users", adminController.GetAllUsers)
				admin.GET("/admin/users/:userId", adminController.GetUserByID)
				admin.GET("/admin/users/:userId/orders", adminController.GetOrdersByUserID)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-store-api",
	})
}
