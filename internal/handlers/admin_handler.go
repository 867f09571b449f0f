// File: internal/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/astraid/astraid/internal/dtos"
	"github.com/astraid/astraid/internal/middleware"
	userrepo "github.com/astraid/astraid/internal/repository/user"
	"github.com/astraid/astraid/internal/services/admin_services"
)

type AdminHandler struct {
	AdminService *admin_services.AdminService
}

func NewAdminHandler(as *admin_services.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: as}
}

// GetAllUsersHandler lists every user for the admin panel.
func (h *AdminHandler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, "Could not retrieve users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToUserResponses(users))
}

type roleUpdateRequest struct {
	Role string `json:"role"`
}

// ChangeRoleHandler updates a user's role. Admins cannot change their own.
func (h *AdminHandler) ChangeRoleHandler(w http.ResponseWriter, r *http.Request) {
	adminID, targetID, ok := adminAndTarget(w, r)
	if !ok {
		return
	}

	var req roleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.AdminService.ChangeUserRole(r.Context(), adminID, targetID, req.Role)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToUserResponse(user))
}

type statusUpdateRequest struct {
	Active *bool `json:"active"`
}

// SetStatusHandler activates or deactivates an account.
func (h *AdminHandler) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	adminID, targetID, ok := adminAndTarget(w, r)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.AdminService.SetUserStatus(r.Context(), adminID, targetID, *req.Active)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToUserResponse(user))
}

func adminAndTarget(w http.ResponseWriter, r *http.Request) (adminID, targetID uint, ok bool) {
	adminID, found := middleware.UserIDFromContext(r.Context())
	if !found {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return 0, 0, false
	}

	rawID := mux.Vars(r)["id"]
	parsed, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return 0, 0, false
	}
	return adminID, uint(parsed), true
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admin_services.ErrSelfChange):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, userrepo.ErrUserNotFound):
		writeError(w, "User not found", http.StatusNotFound)
	default:
		writeError(w, "Could not update user", http.StatusInternalServerError)
	}
}
