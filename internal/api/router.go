package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/fmcg-app/catalog-api/internal/api/handler"
	"github.com/fmcg-app/catalog-api/internal/api/middleware"
	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
)

const defaultBodyLimit = "1M"

// Dependencies is everything the HTTP layer needs. Services and the token
// verifier are required; the rest have usable zero values.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Tokens   ports.TokenVerifier

	Logger zerolog.Logger

	// RateLimitStore is nil to disable rate limiting.
	RateLimitStore echomiddleware.RateLimiterStore
	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.Pinger

	RequestTimeout time.Duration
	BodyLimit      string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.BodyLimit == "" {
		deps.BodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(deps.BodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog",
		Registerer: deps.Registerer,
	}))
	if deps.RateLimitStore != nil {
		e.Use(middleware.RateLimit(deps.RateLimitStore))
	}
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(deps.RequestTimeout))
	}

	// --- Probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	authenticated := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Users (all routes need a token) ---
	userHandler := handler.NewUserHandler(deps.Users)
	users := api.Group("/users", authenticated)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/search", userHandler.Search)
	users.GET("/sort", userHandler.Sort)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Products (reads are public) ---
	productHandler := handler.NewProductHandler(deps.Products)
	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/search", productHandler.Search)
	products.GET("/sort", productHandler.Sort)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authenticated, adminOnly)
	products.PUT("/:id", productHandler.Update, authenticated, adminOnly)
	products.DELETE("/:id", productHandler.Delete, authenticated, adminOnly)

	return e
}

// requestLogger emits one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
