package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/bikeshop/shop-api/internal/api/handler"
	"github.com/bikeshop/shop-api/internal/api/middleware"
	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"

	_ "github.com/bikeshop/shop-api/docs"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log      zerolog.Logger
	Tokens   middleware.TokenValidator
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService
	// Checks are pinged by GET /health/ready, keyed by dependency name.
	Checks map[string]handler.Pinger

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.CORS(d.AllowedOrigins))
	if d.RateLimitRPS > 0 {
		e.Use(middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst))
	}
	e.Use(echomiddleware.BodyLimit("1M"))

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users, d.Orders)
	productHandler := handler.NewProductHandler(d.Products)
	orderHandler := handler.NewOrderHandler(d.Orders)
	healthHandler := handler.NewHealthHandler(d.Checks)

	authenticated := middleware.Auth(d.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	secured := handler.Authenticated

	api := e.Group("/api")

	// --- Auth routes ---
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh_token", authHandler.RefreshToken)

	// --- Product routes ---
	productGroup := api.Group("/product")
	productGroup.GET("/products", productHandler.List)
	productGroup.GET("/most_advantageous", productHandler.MostAdvantageous)
	productGroup.GET("/:id", productHandler.Get)
	productGroup.POST("/create", productHandler.Create, authenticated, adminOnly)
	productGroup.PUT("/update", productHandler.Update, authenticated, adminOnly)
	productGroup.DELETE("/delete/:id", productHandler.Delete, authenticated, adminOnly)

	// --- Order routes ---
	// Auth is attached per route so unknown paths still resolve to 404.
	orderGroup := api.Group("/order")
	orderGroup.POST("/create", secured(orderHandler.Create), authenticated)
	orderGroup.GET("/:id", secured(orderHandler.Get), authenticated)
	orderGroup.GET("/admin/orders", orderHandler.List, authenticated, adminOnly)
	orderGroup.PUT("/admin/update", orderHandler.Update, authenticated, adminOnly)
	orderGroup.DELETE("/admin/delete/:id", orderHandler.Delete, authenticated, adminOnly)

	// --- User routes ---
	userGroup := api.Group("/user")
	userGroup.GET("/me", secured(userHandler.Me), authenticated)
	userGroup.PUT("/update", secured(userHandler.Update), authenticated)
	userGroup.DELETE("/delete", secured(userHandler.Delete), authenticated)
	userGroup.GET("/my_orders", secured(userHandler.MyOrders), authenticated)
	userGroup.GET("/admin/users", userHandler.List, authenticated, adminOnly)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}
