// File: internal/services/admin_services/admin_service.go
package admin_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/astraid/astraid/internal/domain"
	userrepo "github.com/astraid/astraid/internal/repository/user"
)

var ErrSelfChange = errors.New("admins cannot change their own role or status")

// Logger defines the logging interface used by admin services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// AdminService provides user management for administrators.
type AdminService struct {
	userRepo userrepo.UserRepository
	logger   Logger
}

func NewAdminService(userRepo userrepo.UserRepository, logger Logger) *AdminService {
	return &AdminService{userRepo: userRepo, logger: logger}
}

// GetAllUsers retrieves every user in the system.
func (s *AdminService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// ChangeUserRole updates a user's role. Admins cannot demote themselves,
// so the system always keeps at least the acting admin.
func (s *AdminService) ChangeUserRole(ctx context.Context, adminID, userID uint, role string) (*domain.User, error) {
	if role != domain.RoleMember && role != domain.RoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if adminID == userID {
		return nil, ErrSelfChange
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user with ID %d: %w", userID, err)
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	s.logger.Info("user role changed", "admin_id", adminID, "user_id", userID, "role", role)
	return user, nil
}

// SetUserStatus activates or deactivates an account. Deactivated users
// cannot log in. Admins cannot deactivate themselves.
func (s *AdminService) SetUserStatus(ctx context.Context, adminID, userID uint, active bool) (*domain.User, error) {
	if adminID == userID {
		return nil, ErrSelfChange
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user with ID %d: %w", userID, err)
	}

	user.Active = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	s.logger.Info("user status changed", "admin_id", adminID, "user_id", userID, "active", active)
	return user, nil
}
