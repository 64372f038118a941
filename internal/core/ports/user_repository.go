package ports

import (
	"context"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user and returns it with its store-assigned ID.
	// A taken username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Find returns the users matching q. Implementations must not load
	// password hashes for these reads.
	Find(ctx context.Context, q query.UserQuery) ([]*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
