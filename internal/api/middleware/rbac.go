package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

// RequireRole only lets requests through whose identity holds role. It must
// run after Auth.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if err := id.Require(role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
