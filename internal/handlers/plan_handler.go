// File: internal/handlers/plan_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/astraid/astraid/internal/middleware"
	"github.com/astraid/astraid/internal/services/plan_services"
)

type PlanHandler struct {
	PlanService *plan_services.PlanService
}

func NewPlanHandler(ps *plan_services.PlanService) *PlanHandler {
	return &PlanHandler{PlanService: ps}
}

type createPlanRequest struct {
	Title string                    `json:"title"`
	Steps []plan_services.StepInput `json:"steps"`
}

// GetUserPlans lists the authenticated user's training plans.
func (h *PlanHandler) GetUserPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	plans, err := h.PlanService.GetUserPlans(r.Context(), userID)
	if err != nil {
		writeError(w, "Failed to fetch training plans", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan stores a new training plan composed of guide steps.
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	plan, err := h.PlanService.CreatePlan(r.Context(), userID, req.Title, req.Steps)
	if err != nil {
		if errors.Is(err, plan_services.ErrInvalidPlan) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, "Failed to create training plan", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}
