package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CallPlanner/app/controllers"
	"github.com/ManuelReschke/CallPlanner/app/repository"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/cache"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/env"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/export"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/metrics/counter"
)

// Router registers a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires the controllers from the global repository factory and
// the environment configuration.
func InstallRouter(app *fiber.App) {
	var exportCounter counter.ExportCounter = counter.NopExportCounter{}
	if cache.Enabled() {
		exportCounter = counter.NewRedisExportCounter(cache.GetClient())
	}

	exporter := export.NewExporter(export.Options{
		PDFFontPath: env.GetEnv("PDF_FONT_PATH", ""),
	})

	setup(app, NewApiRouter(
		controllers.NewPlanController(repository.GetGlobalFactory().GetPlanRepository()),
		controllers.NewExportController(exporter, exportCounter),
		NewLimiter(),
	))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
