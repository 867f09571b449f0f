// File: internal/repository/guide/guide_repository.go
package guide

import (
	"context"
	"errors"
	"log"

	"github.com/astraid/astraid/internal/domain"
	"gorm.io/gorm"
)

var ErrGuideNotFound = errors.New("guide not found")

type gormGuideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &gormGuideRepository{db: db}
}

func (r *gormGuideRepository) Create(ctx context.Context, guide *domain.TrainingGuide) (*domain.TrainingGuide, error) {
	if guide == nil {
		return nil, errors.New("guide is required")
	}
	if err := guide.IsValid(); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(guide).Error; err != nil {
		log.Printf("[GuideRepository] Database error creating guide %q: %v", guide.Slug, err)
		return nil, errors.New("database error creating guide")
	}
	return guide, nil
}

func (r *gormGuideRepository) FindByID(ctx context.Context, id string) (*domain.TrainingGuide, error) {
	if id == "" {
		return nil, errors.New("invalid guide ID")
	}

	var guide domain.TrainingGuide
	err := r.db.WithContext(ctx).First(&guide, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuideNotFound
		}
		log.Printf("[GuideRepository] Database error finding guide %s: %v", id, err)
		return nil, errors.New("database error fetching guide")
	}
	return &guide, nil
}

func (r *gormGuideRepository) FindBySlug(ctx context.Context, slug string) (*domain.TrainingGuide, error) {
	if slug == "" {
		return nil, errors.New("invalid guide slug")
	}

	var guide domain.TrainingGuide
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&guide).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuideNotFound
		}
		log.Printf("[GuideRepository] Database error finding guide by slug %q: %v", slug, err)
		return nil, errors.New("database error fetching guide")
	}
	return &guide, nil
}

func (r *gormGuideRepository) FindAll(ctx context.Context) ([]domain.TrainingGuide, error) {
	var guides []domain.TrainingGuide
	err := r.db.WithContext(ctx).Order("title ASC").Find(&guides).Error
	if err != nil {
		log.Printf("[GuideRepository] Database error listing guides: %v", err)
		return nil, errors.New("database error listing guides")
	}
	return guides, nil
}
