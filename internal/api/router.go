package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/userforge/user-api/internal/api/handler"
	"github.com/userforge/user-api/internal/api/middleware"
	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/service"
	"github.com/userforge/user-api/internal/infrastructure/config"
	"github.com/userforge/user-api/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Dependencies flow explicitly: repository → services → handlers, no global
// registry.
func NewRouter(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// The HTTP metrics live in a per-router registry so that building more
	// than one router in a process never double-registers collectors.
	promRegistry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "userapi",
		Registerer: promRegistry,
	}))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo, cfg.BcryptCost, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userService)
	userHandler := handler.NewUserHandler(userService)

	authn := middleware.Auth(authService)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	retrieve := middleware.RetrieveUser(userRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Profile routes (self-service) ---
	profile := e.Group("/profile", authn, anyRole)
	profile.GET("/", profileHandler.Get)
	profile.PATCH("/update", profileHandler.Update)
	profile.PATCH("/change-password", profileHandler.ChangePassword)
	profile.DELETE("/delete", profileHandler.Delete)

	// --- User administration routes ---
	users := e.Group("/users", authn, adminOnly)
	users.GET("/", userHandler.List)
	users.GET("/search", userHandler.SearchByEmail)
	users.POST("/", userHandler.Create)
	users.DELETE("/", userHandler.DeleteAll)
	users.GET("/:id", userHandler.GetByID, retrieve)
	users.PATCH("/:id", userHandler.Update, retrieve)
	users.DELETE("/:id", userHandler.Delete, retrieve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the database up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{promRegistry, prometheus.DefaultGatherer},
	}))

	return e
}
