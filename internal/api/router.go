package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrack/fintrack-api/internal/api/handler"
	"github.com/fintrack/fintrack-api/internal/api/middleware"
	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// Deps carries the wired services the router exposes. Mongo and Redis may be
// nil when the process is running degraded; only the readiness probe looks at
// them directly.
type Deps struct {
	AuthService        ports.AuthService
	TransactionService ports.TransactionService
	SummaryService     ports.SummaryService
	Ledger             ports.LedgerBackend
	Mongo              *mongo.Database
	Redis              *redis.Client
	JWTSecret          string
	Log                zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fintrack"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	txHandler := handler.NewTransactionHandler(deps.TransactionService)
	dashboardHandler := handler.NewDashboardHandler(deps.SummaryService)
	ledgerHandler := handler.NewLedgerHandler(deps.Ledger)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/transactions", txHandler.Submit,
		middleware.RBAC(domain.RoleAdmin, domain.RoleUser))
	v1.GET("/transactions", txHandler.List,
		middleware.RBAC(domain.RoleAdmin, domain.RoleUser, domain.RoleViewer))
	v1.GET("/dashboard/summary", dashboardHandler.Summary,
		middleware.RBAC(domain.RoleAdmin, domain.RoleUser, domain.RoleViewer))
	v1.GET("/ledger", ledgerHandler.Get,
		middleware.RBAC(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
