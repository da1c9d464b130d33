package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CallPlanner/app/models"
	"github.com/ManuelReschke/CallPlanner/app/repository"
)

// PlanController handles the plan CRUD endpoints
type PlanController struct {
	planRepo repository.PlanRepository
}

// NewPlanController creates a new plan controller with repository
func NewPlanController(planRepo repository.PlanRepository) *PlanController {
	return &PlanController{
		planRepo: planRepo,
	}
}

// HandleListPlans returns all plans, most recently updated first
func (pc *PlanController) HandleListPlans(c *fiber.Ctx) error {
	plans, err := pc.planRepo.List()
	if err != nil {
		return storeError(c, err, "Failed to fetch plans")
	}
	return c.JSON(plans)
}

// HandleGetPlan returns a single plan
func (pc *PlanController) HandleGetPlan(c *fiber.Ctx) error {
	plan, err := pc.planRepo.GetByID(c.Params("id"))
	if err != nil {
		return storeError(c, err, "Failed to fetch plan")
	}
	return c.JSON(plan)
}

// HandleCreatePlan validates and stores a new plan
func (pc *PlanController) HandleCreatePlan(c *fiber.Ctx) error {
	in, err := parsePlanInput(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, errCodeBadRequest, "Invalid plan payload")
	}
	if err := in.Validate(); err != nil {
		return pc.rejectInput(c, err)
	}

	plan, err := pc.planRepo.Create(in)
	if err != nil {
		return storeError(c, err, "Failed to create plan")
	}
	return c.JSON(plan)
}

// HandleUpdatePlan replaces all editable fields of a plan
func (pc *PlanController) HandleUpdatePlan(c *fiber.Ctx) error {
	in, err := parsePlanInput(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, errCodeBadRequest, "Invalid plan payload")
	}
	if err := in.Validate(); err != nil {
		return pc.rejectInput(c, err)
	}

	plan, err := pc.planRepo.Update(c.Params("id"), in)
	if err != nil {
		return storeError(c, err, "Failed to update plan")
	}
	return c.JSON(plan)
}

// HandleDeletePlan permanently removes a plan
func (pc *PlanController) HandleDeletePlan(c *fiber.Ctx) error {
	if err := pc.planRepo.Delete(c.Params("id")); err != nil {
		return storeError(c, err, "Failed to delete plan")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (pc *PlanController) rejectInput(c *fiber.Ctx, err error) error {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return validationFailed(c, ve)
	}
	return jsonError(c, fiber.StatusBadRequest, errCodeBadRequest, err.Error())
}
