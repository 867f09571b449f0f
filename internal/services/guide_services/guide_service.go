// File: internal/services/guide_services/guide_service.go
package guide_services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/astraid/astraid/internal/domain"
	guiderepo "github.com/astraid/astraid/internal/repository/guide"
)

// Logger defines the logging interface used by guide services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// GuideService serves the training guide library. Guide bodies are
// authored as markdown and rendered to HTML on read.
type GuideService struct {
	guideRepo guiderepo.GuideRepository
	markdown  goldmark.Markdown
	logger    Logger
}

func NewGuideService(guideRepo guiderepo.GuideRepository, logger Logger) *GuideService {
	return &GuideService{
		guideRepo: guideRepo,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger:    logger,
	}
}

// ListGuides returns all guides for the library index.
func (s *GuideService) ListGuides(ctx context.Context) ([]domain.TrainingGuide, error) {
	return s.guideRepo.FindAll(ctx)
}

// GetGuideBySlug fetches one guide and renders its body to HTML.
func (s *GuideService) GetGuideBySlug(ctx context.Context, slug string) (*domain.TrainingGuide, string, error) {
	guide, err := s.guideRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, "", err
	}

	html, err := s.RenderMarkdown(guide.ContentMd)
	if err != nil {
		s.logger.Error("markdown rendering failed", "slug", slug, "error", err)
		return nil, "", fmt.Errorf("failed to render guide %q: %w", slug, err)
	}
	return guide, html, nil
}

// RenderMarkdown converts GFM markdown to HTML.
func (s *GuideService) RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
