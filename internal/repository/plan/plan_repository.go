// File: internal/repository/plan/plan_repository.go
package plan

import (
	"context"
	"errors"
	"log"

	"github.com/astraid/astraid/internal/domain"
	"gorm.io/gorm"
)

type gormPlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &gormPlanRepository{db: db}
}

func (r *gormPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (*domain.TrainingPlan, error) {
	if plan == nil {
		return nil, errors.New("plan is required")
	}
	if plan.UserID == 0 {
		return nil, errors.New("plan must belong to a user")
	}
	if err := plan.IsValid(); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		log.Printf("[PlanRepository] Database error creating plan for user %d: %v", plan.UserID, err)
		return nil, errors.New("database error creating plan")
	}

	log.Printf("[PlanRepository] Plan created with ID: %s for user: %d", plan.ID, plan.UserID)
	return plan, nil
}

// FindByUserID returns the user's plans, most recently updated first,
// with steps ordered by day offset and their guides preloaded.
func (r *gormPlanRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.TrainingPlan, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var plans []domain.TrainingPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_offset ASC")
		}).
		Preload("Steps.Guide").
		Order("updated_at DESC").
		Find(&plans).Error
	if err != nil {
		log.Printf("[PlanRepository] Database error listing plans for user %d: %v", userID, err)
		return nil, errors.New("database error listing plans")
	}
	return plans, nil
}
