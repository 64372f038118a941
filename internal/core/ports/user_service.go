package ports

import (
	"context"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

// UpdateUserInput carries an admin edit. Nil fields are left unchanged.
type UpdateUserInput struct {
	Username *string
	Role     *string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Find(ctx context.Context, q query.UserQuery) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
