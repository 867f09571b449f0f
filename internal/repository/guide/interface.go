package guide

import (
	"context"

	"github.com/astraid/astraid/internal/domain"
)

// GuideRepository handles training guide reads. Guides are authored and
// mutated outside the request path; the chat flow only fetches them.
type GuideRepository interface {
	Create(ctx context.Context, guide *domain.TrainingGuide) (*domain.TrainingGuide, error)
	FindByID(ctx context.Context, id string) (*domain.TrainingGuide, error)
	FindBySlug(ctx context.Context, slug string) (*domain.TrainingGuide, error)
	FindAll(ctx context.Context) ([]domain.TrainingGuide, error)
}
