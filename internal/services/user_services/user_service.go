// File: internal/services/user_services/user_service.go
package user_services

import (
	"context"
	"strings"

	"github.com/astraid/astraid/internal/domain"
	userrepo "github.com/astraid/astraid/internal/repository/user"
)

// UserService handles registration and user lookups.
type UserService struct {
	userRepo userrepo.UserRepository
	logger   Logger
}

func NewUserService(userRepo userrepo.UserRepository, logger Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// RegisterUser creates a new member account. Duplicate emails surface as
// userrepo.ErrEmailTaken so the handler can answer 409.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	user := &domain.User{
		Name:   strings.TrimSpace(name),
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Role:   domain.RoleMember,
		Active: true,
	}
	if err := user.IsValid(); err != nil {
		return nil, err
	}
	if err := user.HashPassword(password); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// GetUserByID fetches a user by primary key.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
