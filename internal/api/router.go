package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hmsv1/hospital-system/docs"
	"github.com/hmsv1/hospital-system/internal/api/handler"
	"github.com/hmsv1/hospital-system/internal/api/middleware"
	"github.com/hmsv1/hospital-system/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Construction of the
// services themselves happens in the command that starts the server.
type Deps struct {
	Auth     ports.AuthService
	Accounts ports.AccountService
	Health   map[string]handler.Pinger

	// SessionSecret guards /api/users with the Session middleware when
	// set. Leave empty when opaque tokens are issued.
	SessionSecret string
	CORSOrigin    string

	// Registry receives HTTP metrics. Nil means the default Prometheus registry.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{d.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "hms",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Log)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	healthHandler := handler.NewHealthHandler(d.Health)

	api := e.Group("/api")

	var guards []echo.MiddlewareFunc
	if d.SessionSecret != "" {
		guards = append(guards, middleware.Session(d.SessionSecret))
	}

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, guards...)

	// --- Account management ---
	users := api.Group("/users", guards...)
	users.GET("", accountHandler.List)
	users.POST("", accountHandler.Create)
	users.GET("/:id", accountHandler.Get)
	users.PUT("/:id", accountHandler.Update)
	users.DELETE("/:id", accountHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
