package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
)

const identityKey = "identity"

// Auth reads "Authorization: Bearer <token>", verifies it and stores the
// resulting domain.Identity in the context. Any failure ends the request
// with an authentication error; the store is never consulted.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  identityKey,
		ParseTokenFunc: func(_ echo.Context, token string) (any, error) {
			id, err := verifier.Verify(token)
			if err != nil {
				return nil, err
			}
			return id, nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return authError(err)
		},
	})
}

// authError strips the echo-jwt wrapper. Verification failures keep their
// kind; a missing or non-bearer header is simply unauthenticated.
func authError(err error) error {
	for _, kind := range []error{domain.ErrTokenExpired, domain.ErrTokenInvalidSignature, domain.ErrTokenMalformed} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return domain.ErrUnauthenticated
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// WithIdentity stores id the way Auth does. Used by tests and internal callers
// that authenticate by other means.
func WithIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}
