package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/CallPlanner/app/controllers"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/cache"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/env"
)

// Redis database used for rate limiter state (cache uses DB 0).
const limiterRedisDB = 2

type ApiRouter struct {
	plans   *controllers.PlanController
	exports *controllers.ExportController
	limiter fiber.Handler
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", h.limiter)
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Plans
	api.Get("/plans", h.plans.HandleListPlans)
	api.Post("/plans", h.plans.HandleCreatePlan)
	api.Get("/plans/:id", h.plans.HandleGetPlan)
	api.Put("/plans/:id", h.plans.HandleUpdatePlan)
	api.Delete("/plans/:id", h.plans.HandleDeletePlan)

	// Exports
	api.Post("/export/:format", h.exports.HandleExport)
	api.Get("/stats/exports", h.exports.HandleExportStats)

	// Static catalogue
	api.Get("/styles", controllers.HandleListStyles)
}

// NewApiRouter creates the /api router. A nil limiter disables rate limiting.
func NewApiRouter(plans *controllers.PlanController, exports *controllers.ExportController, limit fiber.Handler) *ApiRouter {
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &ApiRouter{plans: plans, exports: exports, limiter: limit}
}

// NewLimiter builds the API rate limiter. Its state lives in Redis when the
// cache is enabled so that limits hold across instances.
func NewLimiter() fiber.Handler {
	cfg := limiter.Config{
		Max:        env.GetEnvInt("RATE_LIMIT_MAX", 120),
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "too_many_requests",
				"message": "Rate limit exceeded, try again later",
			})
		},
	}
	if cache.Enabled() {
		cfg.Storage = redis.New(redis.Config{
			Host:     cache.Host(),
			Port:     cache.Port(),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
			Database: limiterRedisDB,
			Reset:    false,
		})
	}
	return limiter.New(cfg)
}
