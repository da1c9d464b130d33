package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/CallPlanner/app/models"
	"github.com/ManuelReschke/CallPlanner/app/repository"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/logging"
)

// Error codes returned in the "error" field of JSON error bodies.
const (
	errCodeBadRequest        = "bad_request"
	errCodeValidation        = "validation_failed"
	errCodeNotFound          = "not_found"
	errCodeExportFailed      = "export_failed"
	errCodeInternal          = "internal_server_error"
	errCodeUnsupportedFormat = "unsupported_format"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// parsePlanInput decodes a plan-shaped JSON body.
func parsePlanInput(c *fiber.Ctx) (*models.PlanInput, error) {
	var in models.PlanInput
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// validationFailed answers 400 with the fields that failed validation.
func validationFailed(c *fiber.Ctx, ve *models.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   errCodeValidation,
		"message": "Client name and a valid social style are required",
		"fields":  ve.Fields,
	})
}

// storeError maps a plan store failure to a response. Unknown ids are 404,
// everything else is logged and answered with 500 and the given message.
func storeError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, repository.ErrPlanNotFound) {
		return jsonError(c, fiber.StatusNotFound, errCodeNotFound, "Plan not found")
	}
	logging.L().Error(message,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return jsonError(c, fiber.StatusInternalServerError, errCodeInternal, message)
}
