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

	"github.com/openalgo/auth-system/internal/api/handler"
	"github.com/openalgo/auth-system/internal/api/middleware"
	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/service"
	"github.com/openalgo/auth-system/internal/infrastructure/config"
	mongodb "github.com/openalgo/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/openalgo/auth-system/internal/infrastructure/db/redis"
	httphandlers "github.com/openalgo/auth-system/internal/infrastructure/http/handlers"
	"github.com/openalgo/auth-system/internal/infrastructure/oauth"
	"github.com/openalgo/auth-system/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)

	tokens := token.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	cookieOpts := handler.CookieOptions{
		Secure: cfg.CookieSecure,
		MaxAge: int(tokens.TTL().Seconds()),
	}

	authService := service.NewAuthService(userRepo, roleRepo, settingsRepo, tokens, log)
	userService := service.NewUserService(userRepo, roleRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	googleService := service.NewGoogleAuthService(
		userRepo, roleRepo, settingsRepo,
		oauth.NewGoogleProvider(cfg.GoogleRedirectURL),
		redisdb.NewStateStore(rdb),
		tokens, log,
	)

	e.Use(middleware.Auth(authService))

	// --- Public surface ---
	authHandler := handler.NewAuthHandler(authService, cookieOpts)
	googleHandler := handler.NewGoogleHandler(googleService, cookieOpts)

	e.GET("/", root)
	e.POST("/register", authHandler.Register)
	e.POST("/token", authHandler.Token)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/auth/google/login", googleHandler.Login)
	e.GET("/auth/google/callback", googleHandler.Callback)

	// --- Authenticated surface ---
	e.GET("/dashboard", authHandler.Dashboard)

	userHandler := handler.NewUserHandler(userService)
	admin := e.Group("", middleware.RequireTier(domain.TierAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/roles", userHandler.Roles)
	admin.GET("/manage", userHandler.Manage)

	settingsHandler := handler.NewSettingsHandler(settingsService)
	super := e.Group("", middleware.RequireTier(domain.TierSuperadmin))
	super.GET("/settings", settingsHandler.Get)
	super.PUT("/settings", settingsHandler.Update)

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

func root(c echo.Context) error {
	return c.JSON(200, map[string]string{
		"service": "auth-system",
		"status":  "ok",
	})
}
