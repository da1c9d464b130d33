package main

import (
	"fmt"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/ManuelReschke/CallPlanner/app/repository"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/cache"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/database"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/env"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/logging"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/router"
)

// Plan bodies are small text payloads.
const bodyLimit = 1 << 20

func main() {
	app := NewApplication()
	defer logging.Sync()

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		logging.L().Fatal("Server stopped", zap.String("addr", addr), zap.Error(err))
	}
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	log, err := logging.Setup(env.IsDev())
	if err != nil {
		panic(err)
	}

	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	if cache.Enabled() {
		cache.SetupCache()
	}

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/callplanner to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "CallPlanner",
		BodyLimit: bodyLimit,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	log.Info("Application ready", zap.String("env", env.GetEnv("APP_ENV", "prod")))
	return app
}
