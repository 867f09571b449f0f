// File: internal/handlers/guide_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/astraid/astraid/internal/domain"
	guiderepo "github.com/astraid/astraid/internal/repository/guide"
	"github.com/astraid/astraid/internal/services/guide_services"
)

type GuideHandler struct {
	GuideService *guide_services.GuideService
}

func NewGuideHandler(gs *guide_services.GuideService) *GuideHandler {
	return &GuideHandler{GuideService: gs}
}

// guideSummary is the listing shape; bodies are only sent for detail reads.
type guideSummary struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type guideDetail struct {
	guideSummary
	ContentMd   string `json:"content_md"`
	ContentHTML string `json:"content_html"`
}

// ListGuides returns the guide library index.
func (h *GuideHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.GuideService.ListGuides(r.Context())
	if err != nil {
		writeError(w, "Could not retrieve guides", http.StatusInternalServerError)
		return
	}

	summaries := make([]guideSummary, 0, len(guides))
	for _, g := range guides {
		summaries = append(summaries, toGuideSummary(&g))
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetGuideBySlug returns one guide with its markdown rendered to HTML.
func (h *GuideHandler) GetGuideBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	guide, html, err := h.GuideService.GetGuideBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, guiderepo.ErrGuideNotFound) {
			writeError(w, "Guide not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not retrieve guide", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, guideDetail{
		guideSummary: toGuideSummary(guide),
		ContentMd:    guide.ContentMd,
		ContentHTML:  html,
	})
}

func toGuideSummary(g *domain.TrainingGuide) guideSummary {
	return guideSummary{
		ID:      g.ID,
		Slug:    g.Slug,
		Title:   g.Title,
		Summary: g.Summary,
	}
}
