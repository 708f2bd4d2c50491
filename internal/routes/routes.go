package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gatehouse/gatehouse/internal/account"
	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/internal/config"
	"github.com/gatehouse/gatehouse/internal/middleware"
	"github.com/gatehouse/gatehouse/internal/notification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside of dev the database is mandatory; dev falls back to the
	// in-memory store so the API runs without infrastructure.
	if !isDev(d.Cfg.AppEnv) && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	// The origin gate runs before every handler, preflights included.
	app.Use(middleware.OriginGuard(d.Cfg.AllowedOrigins))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API running")
	})

	var repo account.Repository
	if d.DB != nil {
		repo = account.NewPostgresRepository(d.DB)
	} else {
		repo = account.NewMemoryRepository()
	}
	accounts := account.NewService(repo, d.Cfg.ResetCodeTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)
	handler := auth.NewHandler(accounts, notifier, d.Cfg, d.Logger)

	api := app.Group("/api")
	RegisterAuthRoutes(api, handler, middleware.RequireSession([]byte(d.Cfg.JWTSecret)))

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
