package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storerating/rating-system/docs"
	"github.com/storerating/rating-system/internal/api/handler"
	"github.com/storerating/rating-system/internal/api/middleware"
	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/http/handlers"
)

// requestTimeout bounds handler work that honours the request context.
const requestTimeout = 30 * time.Second

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth    ports.AuthService
	Ratings ports.RatingService
	Admin   ports.AdminService
	Tokens  ports.TokenIssuer

	// Health lists the backends pinged by the readiness probe.
	Health []handlers.Dependency

	Log zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics middleware and /metrics.
	// Both nil disables them.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echomiddleware.ContextTimeout(requestTimeout))
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "store_ratings",
			Subsystem:  "http",
			Registerer: deps.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	storeHandler := handler.NewStoreHandler(deps.Ratings)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Ratings)
	authenticated := middleware.Auth(deps.Tokens)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Health...)

	api.GET("/health", healthHandler.Liveness)            // liveness
	api.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", authHandler.ChangePassword, authenticated, middleware.RBAC())

	api.GET("/users/me", authHandler.Me, authenticated, middleware.RBAC())

	// --- Stores & ratings ---
	stores := api.Group("/stores", authenticated)
	stores.GET("", storeHandler.List, middleware.RBAC())
	stores.POST("", adminHandler.CreateStore, middleware.RBAC(domain.RoleAdmin))
	stores.GET("/owner/me/ratings", storeHandler.OwnerRatings, middleware.RBAC(domain.RoleOwner))
	stores.POST("/:storeId/rating", storeHandler.SubmitRating, middleware.RBAC())
	stores.GET("/:storeId/my-rating", storeHandler.MyRating, middleware.RBAC())

	// --- Admin ---
	admin := api.Group("/admin", authenticated, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.GET("/stores", adminHandler.ListStores)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogRequestID: true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Warn()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
