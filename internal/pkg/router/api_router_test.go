package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/CallPlanner/app/controllers"
	"github.com/ManuelReschke/CallPlanner/app/repository"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/database"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/export"
)

const openAPIPath = "../../../public/docs/v1/openapi.yml"

func newTestApp(t *testing.T, limit fiber.Handler) *fiber.App {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	app := fiber.New()
	setup(app, NewApiRouter(
		controllers.NewPlanController(repository.NewPlanRepository(db)),
		controllers.NewExportController(export.NewExporter(export.Options{}), nil),
		limit,
	))
	return app
}

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := openapi3.NewLoader().LoadFromFile(openAPIPath)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	return doc
}

// openAPIPathFor converts a Fiber route path like /api/plans/:id to /api/plans/{id}.
func openAPIPathFor(route string) string {
	parts := strings.Split(route, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "{" + strings.TrimPrefix(p, ":") + "}"
		}
	}
	return strings.Join(parts, "/")
}

func TestOpenAPIDocumentIsValid(t *testing.T) {
	doc := loadOpenAPI(t)
	assert.Equal(t, "CallPlanner API", doc.Info.Title)
}

func TestEveryAPIRouteIsDocumented(t *testing.T) {
	doc := loadOpenAPI(t)
	app := newTestApp(t, nil)

	documented := map[string]bool{}
	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			documented[method+" "+strings.TrimRight(path, "/")] = true
		}
	}

	seen := 0
	for _, route := range app.GetRoutes(true) {
		switch route.Method {
		case fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
		default:
			continue
		}
		if !strings.HasPrefix(route.Path, "/api") {
			continue
		}
		key := route.Method + " " + strings.TrimRight(openAPIPathFor(route.Path), "/")
		assert.True(t, documented[key], "route %s is not documented", key)
		seen++
	}
	assert.Equal(t, len(documented), seen, "documented operations without a route")
}

func TestApiRoot(t *testing.T) {
	app := newTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLimiterRejectsBurst(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "2")
	t.Setenv("CACHE_ENABLED", "false")
	app := newTestApp(t, NewLimiter())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/styles", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, codes)
}
