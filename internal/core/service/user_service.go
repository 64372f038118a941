package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.Find(ctx, query.UserQuery{})
}

// Find runs a search or sort query built by the query package.
func (s *UserService) Find(ctx context.Context, q query.UserQuery) ([]*domain.User, error) {
	users, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return redact(users...), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return redact(u)[0], nil
}

// Update changes username and/or role. Passwords cannot be changed here.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Username == nil && in.Role == nil {
		return nil, domain.NewValidationError("username or role is required")
	}

	upd := domain.UserUpdate{UpdatedAt: time.Now().UTC()}
	if in.Username != nil {
		if *in.Username == "" {
			return nil, domain.NewValidationError("username must not be empty")
		}
		upd.Username = in.Username
	}
	if in.Role != nil {
		role := domain.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.NewValidationError("role must be one of: admin user")
		}
		upd.Role = &role
	}

	u, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("role", string(u.Role)).Msg("user updated")
	return redact(u)[0], nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// redact clears password hashes in place and returns its arguments.
func redact(users ...*domain.User) []*domain.User {
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users
}
