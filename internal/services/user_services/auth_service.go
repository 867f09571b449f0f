// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"

	"github.com/astraid/astraid/internal/auth"
	userrepo "github.com/astraid/astraid/internal/repository/user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountDisabled = errors.New("account is deactivated")

// AuthService validates credentials and issues session tokens.
type AuthService struct {
	userRepo  userrepo.UserRepository
	jwtSecret []byte
	logger    Logger
}

func NewAuthService(userRepo userrepo.UserRepository, jwtSecret string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Login verifies the password and returns a signed JWT. The same error is
// returned for unknown emails and wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := user.ValidatePassword(password); err != nil {
		s.logger.Warn("failed login attempt", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}
	if !user.Active {
		return "", ErrAccountDisabled
	}

	token, err := auth.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		s.logger.Error("token generation failed", "user_id", user.ID, "error", err)
		return "", errors.New("could not create session")
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// ValidateJWTToken checks a session token and returns the user ID.
func (s *AuthService) ValidateJWTToken(token string) (uint, error) {
	return auth.ValidateToken(token, s.jwtSecret)
}
