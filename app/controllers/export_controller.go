package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/CallPlanner/app/models"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/export"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/logging"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/metrics/counter"
)

// ExportController renders plan payloads into downloadable documents
type ExportController struct {
	exporter *export.Exporter
	counter  counter.ExportCounter
}

// NewExportController creates an export controller. A nil counter disables export counting.
func NewExportController(exporter *export.Exporter, exportCounter counter.ExportCounter) *ExportController {
	if exportCounter == nil {
		exportCounter = counter.NopExportCounter{}
	}
	return &ExportController{
		exporter: exporter,
		counter:  exportCounter,
	}
}

// HandleExport renders the posted plan in the format named by the :format
// parameter and sends it as an attachment. The plan does not need to be saved
// and missing fields render as N/A.
func (ec *ExportController) HandleExport(c *fiber.Ctx) error {
	format := export.Format(strings.ToLower(c.Params("format")))
	if !ec.exporter.Supports(format) {
		return jsonError(c, fiber.StatusNotFound, errCodeUnsupportedFormat, "Unsupported export format")
	}

	in, err := parsePlanInput(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, errCodeBadRequest, "Invalid plan payload")
	}

	file, err := ec.exporter.Export(in.ToPlan(), format)
	if err != nil {
		logging.L().Error("Error exporting plan",
			zap.String("format", string(format)),
			zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, errCodeExportFailed, "Failed to export file")
	}

	if err := ec.counter.AddExport(c.UserContext(), string(format)); err != nil {
		logging.L().Warn("Could not count export", zap.String("format", string(format)), zap.Error(err))
	}

	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// HandleExportStats returns the number of exports per format
func (ec *ExportController) HandleExportStats(c *fiber.Ctx) error {
	snapshot, err := ec.counter.Snapshot(c.UserContext())
	if err != nil {
		logging.L().Error("Error reading export counters", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, errCodeInternal, "Failed to load export statistics")
	}
	for _, f := range ec.exporter.Formats() {
		if _, ok := snapshot[string(f)]; !ok {
			snapshot[string(f)] = 0
		}
	}
	return c.JSON(snapshot)
}

// HandleListStyles returns the static social style catalogue
func HandleListStyles(c *fiber.Ctx) error {
	return c.JSON(models.Profiles())
}
