package repository

import (
	"errors"

	"github.com/ManuelReschke/CallPlanner/app/models"
	"gorm.io/gorm"
)

// ErrPlanNotFound is returned when no plan has the requested id.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepository defines the interface for plan-related database operations
type PlanRepository interface {
	Create(in *models.PlanInput) (*models.Plan, error)
	GetByID(id string) (*models.Plan, error)
	List() ([]models.Plan, error)
	Update(id string, in *models.PlanInput) (*models.Plan, error)
	Delete(id string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Plan PlanRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Plan: NewPlanRepository(db),
	}
}
