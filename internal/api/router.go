package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/clubpuntos/loyalty-system/docs"
	"github.com/clubpuntos/loyalty-system/internal/api/handler"
	"github.com/clubpuntos/loyalty-system/internal/api/middleware"
	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
	"github.com/clubpuntos/loyalty-system/internal/core/service"
	mongodb "github.com/clubpuntos/loyalty-system/internal/infrastructure/db/mongo"
	redisdb "github.com/clubpuntos/loyalty-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. The audit sink is constructed by the caller so its worker
// lifecycle stays under main's control.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("loyalty"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	catalogRepo := mongodb.NewCatalogRepository(db)
	leaderboard := redisdb.NewLeaderboardCache(rdb)

	registry := service.NewRegistryService(accountRepo, jwtSecret, 24*time.Hour, log)
	ledger := service.NewLedgerService(accountRepo, leaderboard, audit, log)
	catalog := service.NewCatalogService(catalogRepo, log)

	authHandler := handler.NewAuthHandler(registry)
	accountHandler := handler.NewAccountHandler(registry)
	pointsHandler := handler.NewPointsHandler(ledger)
	benefitsHandler := handler.NewCatalogHandler(catalog, domain.KindBenefit)
	prizesHandler := handler.NewCatalogHandler(catalog, domain.KindPrize)

	authMiddleware := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/accounts/me", accountHandler.Me)
	v1.PATCH("/accounts/me", accountHandler.UpdateMe)
	v1.GET("/accounts/me/balance", pointsHandler.Balance)
	v1.GET("/benefits", benefitsHandler.List)
	v1.GET("/benefits/:id", benefitsHandler.Get)
	v1.GET("/prizes", prizesHandler.List)
	v1.GET("/prizes/:id", prizesHandler.Get)

	// --- Admin routes ---
	admin := v1.Group("/admin", adminOnly)
	admin.POST("/accounts", accountHandler.RegisterAdmin)
	admin.GET("/accounts", accountHandler.List)
	admin.GET("/accounts/:id", accountHandler.Get)
	admin.POST("/accounts/:id/points", pointsHandler.Adjust)
	admin.GET("/points/top", pointsHandler.Top)
	admin.POST("/benefits", benefitsHandler.Create)
	admin.PUT("/benefits/:id", benefitsHandler.Update)
	admin.DELETE("/benefits/:id", benefitsHandler.Delete)
	admin.POST("/prizes", prizesHandler.Create)
	admin.PUT("/prizes/:id", prizesHandler.Update)
	admin.DELETE("/prizes/:id", prizesHandler.Delete)

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
