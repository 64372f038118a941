package ports

import (
	"context"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

// RegisterInput carries a registration request. An empty Role means domain.RoleUser.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// PasswordHasher is the one-way hashing capability used for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, error)
}

// TokenVerifier checks identity tokens and returns the identity they carry.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
