package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = time.Hour

// tokenClaims is the payload of an identity token.
type tokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens. It is safe for
// concurrent use; the secret is never modified after construction.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the given user that expires TokenTTL from now.
func (s *TokenService) Issue(userID string, role domain.Role) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the identity embedded in
// the token. The role is trusted as of issuance; the store is not consulted.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return domain.Identity{}, s.classify(err, claims)
	}

	role := domain.Role(claims.Role)
	if claims.UserID == "" || !role.Valid() {
		return domain.Identity{}, domain.ErrTokenMalformed
	}
	return domain.Identity{UserID: claims.UserID, Role: role}, nil
}

// classify maps a parser failure onto the token error taxonomy. Claims are
// decoded before the signature is checked, so an elapsed expiry is reported
// as ErrTokenExpired even when the signature is also wrong.
func (s *TokenService) classify(err error, claims *tokenClaims) error {
	if errors.Is(err, jwt.ErrTokenMalformed) {
		return domain.ErrTokenMalformed
	}
	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		return domain.ErrTokenExpired
	}
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}
