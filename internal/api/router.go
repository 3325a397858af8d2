package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/taskforge/internal/api/handler"
	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/core/service"
	"github.com/taskforge/taskforge/internal/infrastructure/config"
	mongodb "github.com/taskforge/taskforge/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/taskforge/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskforge"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	workspaceRepo := mongodb.NewWorkspaceRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authService := service.NewAuthService(userRepo, sessions, hasher, tokens, log)
	taskService := service.NewTaskService(taskRepo, log)
	workspaceService := service.NewWorkspaceService(workspaceRepo, log)

	registerRoutes(e,
		handler.NewAuthHandler(authService),
		handler.NewTaskHandler(taskService),
		handler.NewWorkspaceHandler(workspaceService),
		middleware.Auth(tokens),
	)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// registerRoutes wires the API route groups. Split out from NewRouter so
// tests can mount the same surface over stub-backed services.
func registerRoutes(e *echo.Echo, authHandler *handler.AuthHandler, taskHandler *handler.TaskHandler, workspaceHandler *handler.WorkspaceHandler, requireAuth echo.MiddlewareFunc) {
	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Task routes (owner-scoped) ---
	tasks := e.Group("/api/tasks", requireAuth)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Workspace routes (member-scoped) ---
	workspaces := e.Group("/api/workspaces", requireAuth)
	workspaces.POST("", workspaceHandler.Create)
	workspaces.GET("", workspaceHandler.List)
}
