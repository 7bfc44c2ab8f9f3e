package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/identity-squad/user-api/docs"
	"github.com/identity-squad/user-api/internal/api/handler"
	"github.com/identity-squad/user-api/internal/api/middleware"
	"github.com/identity-squad/user-api/internal/core/domain"
	"github.com/identity-squad/user-api/internal/core/ports"
	"github.com/identity-squad/user-api/internal/core/service"
	mongodb "github.com/identity-squad/user-api/internal/infrastructure/db/mongo"
	redisdb "github.com/identity-squad/user-api/internal/infrastructure/db/redis"
	"github.com/identity-squad/user-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit service and recorder are constructed by the caller, which owns
// the dispatcher's lifecycle.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	auditSvc ports.AuditService,
	recorder ports.AuditRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenCache := redisdb.NewTokenCache(rdb, cfg.TokenTTL)

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, hasher, recorder, log)
	authService := service.NewAuthService(userRepo, hasher, tokens, tokenCache, recorder, log)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	auditHandler := handler.NewAuditHandler(auditSvc)

	authMW := middleware.Auth(tokens)

	// --- Per-route policies ---
	adminOnly := middleware.Policy{AllowedRoles: []domain.Role{domain.RoleAdmin}}
	selfOrAdmin := middleware.Policy{AllowedRoles: []domain.Role{domain.RoleAdmin}, AllowSelf: true}
	// An ADMIN may delete anyone except themselves; a USER may never delete.
	adminNotSelf := middleware.Policy{AllowedRoles: []domain.Role{domain.RoleAdmin}, ForbidSelf: true}

	// --- User routes ---
	e.POST("/users", userHandler.Create) // public registration
	e.GET("/users", userHandler.List, authMW, middleware.Require(adminOnly))
	e.GET("/users/:id", userHandler.Get, authMW, middleware.Require(selfOrAdmin))
	e.PATCH("/users/:id", userHandler.Update, authMW, middleware.Require(selfOrAdmin))
	e.DELETE("/users/:id", userHandler.Delete, authMW, middleware.Require(adminNotSelf))
	e.GET("/users/:id/activity", auditHandler.Activity, authMW, middleware.Require(adminOnly))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
