// File: internal/services/plan_services/plan_service.go
package plan_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/astraid/astraid/internal/domain"
	planrepo "github.com/astraid/astraid/internal/repository/plan"
)

// ErrInvalidPlan marks input validation failures so the handler can
// answer 400 instead of a generic 500.
var ErrInvalidPlan = errors.New("invalid plan")

// Logger defines the logging interface used by plan services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// StepInput is one requested plan step.
type StepInput struct {
	GuideID   string `json:"guideId"`
	DayOffset int    `json:"dayOffset"`
}

// PlanService manages user-composed training plans.
type PlanService struct {
	planRepo planrepo.PlanRepository
	logger   Logger
}

func NewPlanService(planRepo planrepo.PlanRepository, logger Logger) *PlanService {
	return &PlanService{planRepo: planRepo, logger: logger}
}

// CreatePlan validates and stores a new plan for the user.
func (s *PlanService) CreatePlan(ctx context.Context, userID uint, title string, steps []StepInput) (*domain.TrainingPlan, error) {
	plan := &domain.TrainingPlan{
		UserID: userID,
		Title:  title,
		Steps:  make([]domain.TrainingPlanStep, 0, len(steps)),
	}
	for _, step := range steps {
		plan.Steps = append(plan.Steps, domain.TrainingPlanStep{
			GuideID:   step.GuideID,
			DayOffset: step.DayOffset,
		})
	}
	if err := plan.IsValid(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	created, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}

	s.logger.Info("training plan created", "plan_id", created.ID, "user_id", userID, "steps", len(steps))
	return created, nil
}

// GetUserPlans lists the user's plans, most recently updated first.
func (s *PlanService) GetUserPlans(ctx context.Context, userID uint) ([]domain.TrainingPlan, error) {
	return s.planRepo.FindByUserID(ctx, userID)
}
