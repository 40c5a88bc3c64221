package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/poseidon-capital/poseidon-api/internal/api/handler"
	"github.com/poseidon-capital/poseidon-api/internal/api/middleware"
	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
	"github.com/poseidon-capital/poseidon-api/internal/core/ports"
	"github.com/poseidon-capital/poseidon-api/internal/core/service"
	"github.com/poseidon-capital/poseidon-api/internal/infrastructure/config"
	mongodb "github.com/poseidon-capital/poseidon-api/internal/infrastructure/db/mongo"
	redisdb "github.com/poseidon-capital/poseidon-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, provider ports.IdentityProvider, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("poseidon"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	denylist := redisdb.NewTokenDenylist(rdb)
	states := redisdb.NewStateStore(rdb)

	// One typed lookup per uniqueness-constrained column; the reference-data
	// columns belong to the surrounding CRUD layer, which consumes the
	// checker during its own validation passes.
	unique := service.NewUniquenessChecker()
	unique.Register("account", "username", mongodb.ExistsQuery(db, "accounts", "username"))
	unique.Register("account", "external_id", mongodb.ExistsQuery(db, "accounts", "external_id"))
	unique.Register("rule", "name", mongodb.ExistsQuery(db, "rules", "name"))
	unique.Register("trade", "account", mongodb.ExistsQuery(db, "trades", "account"))

	authService := service.NewAuthService(accountRepo, unique, audit, denylist,
		cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.StoreTimeout)
	accountService := service.NewAccountService(accountRepo, audit, cfg.Auth.StoreTimeout)

	authHandler := handler.NewAuthHandler(authService)
	oauthHandler := handler.NewOAuthHandler(authService, provider, states)
	accountHandler := handler.NewAccountHandler(accountService)
	authMiddleware := middleware.Auth(cfg.Auth.JWTSecret, denylist)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/oauth/github", oauthHandler.Authorize)
	e.GET("/auth/oauth/github/callback", oauthHandler.Callback)

	// --- Self-service routes (any authenticated principal) ---
	me := e.Group("/me", authMiddleware)
	me.GET("", accountHandler.Me)
	me.PUT("", accountHandler.UpdateMe)

	// --- Administration routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/accounts", accountHandler.List)
	admin.GET("/accounts/:id", accountHandler.Get)
	admin.PUT("/accounts/:id", accountHandler.Update)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
