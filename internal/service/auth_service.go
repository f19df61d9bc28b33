package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/models"
)

// invalidCredentialsMsg is shared by every login failure so callers cannot
// tell an unknown username from a wrong password
const invalidCredentialsMsg = "invalid username or password"

// UserFinder looks up users by username
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// LoginResult is the successful login payload
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService authenticates operators and issues bearer tokens
type AuthService struct {
	users  UserFinder
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserFinder, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies credentials and returns a signed token with the user.
// Unknown users, wrong passwords and inactive accounts all fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Info("Login rejected", zap.String("username", username))
		return nil, apperr.Unauthenticated(invalidCredentialsMsg)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Login succeeded", zap.String("username", username), zap.String("role", user.Role))
	return &LoginResult{Token: token, User: user}, nil
}
