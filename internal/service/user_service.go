package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/repository"
)

// UserInput carries the writable fields of a user. Password is optional on
// update; empty keeps the current hash.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

// UserService manages operator accounts
type UserService struct {
	users      *repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users *repository.UserRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, logger: logger}
}

// Create creates a new user. Role defaults to user, accounts start active.
func (s *UserService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	if input.Username == "" {
		return nil, apperr.Validation("username is required")
	}
	if input.Password == "" {
		return nil, apperr.Validation("password is required")
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if !models.ValidRole(input.Role) {
		return nil, apperr.Validation("unknown role: " + input.Role)
	}

	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("username already taken")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         input.Role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created", zap.String("username", user.Username), zap.String("role", user.Role))
	return user, nil
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Update replaces the writable fields of a user
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	if input.Username != "" && input.Username != user.Username {
		existing, err := s.users.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Validation("username already taken")
		}
		user.Username = input.Username
	}
	if input.Role != "" {
		if !models.ValidRole(input.Role) {
			return nil, apperr.Validation("unknown role: " + input.Role)
		}
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	s.logger.Info("User deleted", zap.String("id", id))
	return nil
}

// EnsureBootstrapAdmin seeds an admin account when the user table is empty
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		s.logger.Warn("No users exist and no bootstrap admin password configured")
		return nil
	}
	_, err = s.Create(ctx, UserInput{
		Username: username,
		Password: password,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	s.logger.Info("Bootstrap admin created", zap.String("username", username))
	return nil
}
