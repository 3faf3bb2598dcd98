package services

import (
	"context"
	stderrors "errors"

	"github.com/pagecraft/pagecraft/internal/auth"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/subscription"
)

// UserService implements user.Service
type UserService struct {
	repo      user.Repository
	hasher    *auth.Hasher
	freeLimit int
	logger    *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, hasher *auth.Hasher, freeLimit int, log *logger.Logger) user.Service {
	return &UserService{
		repo:      repo,
		hasher:    hasher,
		freeLimit: freeLimit,
		logger:    log,
	}
}

// Register creates a new account with free-plan defaults
func (s *UserService) Register(ctx context.Context, email, name, password string) (*user.User, error) {
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("Email is already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:              email,
		Name:               name,
		PasswordHash:       hash,
		Role:               user.RoleClient,
		PlanType:           subscription.PlanFree,
		SubscriptionStatus: subscription.StatusFree,
		AIGenerationsUsed:  0,
		AIGenerationsLimit: s.freeLimit,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, nil
}

// Authenticate verifies credentials and returns the account
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Hide whether the email exists
		return nil, errors.Unauthorized("Invalid credentials")
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, errors.Unauthorized("Invalid credentials")
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all users with pagination
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateRole changes a user's role
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) (*user.User, error) {
	if role != user.RoleAdmin && role != user.RoleClient {
		return nil, errors.BadRequest("Role must be ADMIN or CLIENT")
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update role")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": id,
		"role":    role,
	}).Info("User role updated")

	return u, nil
}

// Delete removes a user. Self-deletion is rejected so an admin cannot
// lock themselves out mid-session.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return errors.BadRequest("Cannot delete yourself")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  id,
		"actor_id": actorID,
	}).Info("User deleted")

	return nil
}

// isNotFound reports whether err is the repository's not-found error
func isNotFound(err error) bool {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == errors.ErrCodeNotFound
	}
	return false
}
