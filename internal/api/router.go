package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/teakmarket/marketplace-api/internal/api/handler"
	"github.com/teakmarket/marketplace-api/internal/api/middleware"
	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

// Services groups the use cases the router exposes.
type Services struct {
	Auth     ports.AuthService
	Products ports.ProductService
	Carts    ports.CartService
	Orders   ports.OrderService
	Sales    ports.SaleService
	Vendors  ports.VendorService
}

// RouterConfig carries everything NewRouter needs.
type RouterConfig struct {
	Services  Services
	JWTSecret string
	Logger    zerolog.Logger
	// Readiness checks keyed by dependency name.
	Readiness map[string]handler.Pinger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.Logger)

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(cfg.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	svc := cfg.Services
	authHandler := handler.NewAuthHandler(svc.Auth)
	productHandler := handler.NewProductHandler(svc.Products)
	cartHandler := handler.NewCartHandler(svc.Carts)
	orderHandler := handler.NewOrderHandler(svc.Orders, svc.Sales)
	saleHandler := handler.NewSaleHandler(svc.Sales, svc.Vendors)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))
	vendorOnly := middleware.RBAC(domain.RoleVendor)

	v1.GET("/me", authHandler.Me)

	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.POST("/products", productHandler.Create, vendorOnly)
	v1.PUT("/products/:id", productHandler.Update, vendorOnly)
	v1.DELETE("/products/:id", productHandler.Delete, vendorOnly)

	v1.GET("/cart", cartHandler.List)
	v1.POST("/cart/lines", cartHandler.Add)
	v1.DELETE("/cart/lines/:id", cartHandler.Remove)

	v1.POST("/orders", orderHandler.Place)
	v1.GET("/orders", orderHandler.List)

	v1.GET("/sales", saleHandler.List, vendorOnly)
	v1.GET("/sales/:id", saleHandler.Get)
	v1.POST("/sales/:id/ship", saleHandler.Ship, vendorOnly)
	v1.GET("/vendor/revenue", saleHandler.Revenue, vendorOnly)

	// --- Health checks and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
