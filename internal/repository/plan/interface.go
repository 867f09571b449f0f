package plan

import (
	"context"

	"github.com/astraid/astraid/internal/domain"
)

// PlanRepository handles training plan persistence.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (*domain.TrainingPlan, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.TrainingPlan, error)
}
