package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ManuelReschke/CallPlanner/app/models"
)

// Timestamps are stored with microsecond precision (DATETIME(6) on MySQL).
const timestampPrecision = time.Microsecond

// planRepository implements the PlanRepository interface
type planRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// PlanRepositoryOption configures a plan repository.
type PlanRepositoryOption func(*planRepository)

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) PlanRepositoryOption {
	return func(r *planRepository) {
		r.now = now
	}
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB, opts ...PlanRepositoryOption) PlanRepository {
	r := &planRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *planRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(timestampPrecision)
}

// Create stores a new plan with a fresh id
func (r *planRepository) Create(in *models.PlanInput) (*models.Plan, error) {
	now := r.timestamp()
	plan := &models.Plan{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(plan)

	if err := r.db.Create(plan).Error; err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// GetByID retrieves a plan by its id
func (r *planRepository) GetByID(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, notFoundOr(err, "get plan %s", id)
	}
	return &plan, nil
}

// List retrieves all plans, most recently updated first
func (r *planRepository) List() ([]models.Plan, error) {
	plans := make([]models.Plan, 0)
	err := r.db.Order("updated_at DESC").Order("created_at DESC").Order("id ASC").Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// Update replaces every editable field of a plan. The id and creation time are kept
// and the update time always moves forward, even if the clock does not.
func (r *planRepository) Update(id string, in *models.PlanInput) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&plan).Error; err != nil {
			return err
		}

		previous := plan.UpdatedAt
		in.Apply(&plan)
		plan.UpdatedAt = r.timestamp()
		if !plan.UpdatedAt.After(previous) {
			plan.UpdatedAt = previous.Add(timestampPrecision)
		}

		return tx.Save(&plan).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "update plan %s", id)
	}
	return &plan, nil
}

// Delete permanently removes a plan
func (r *planRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Plan{})
	if res.Error != nil {
		return fmt.Errorf("delete plan %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPlanNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
