package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

type stubVerifier struct {
	verifyFn func(token string) (domain.Identity, error)
}

func (s stubVerifier) Verify(token string) (domain.Identity, error) {
	return s.verifyFn(token)
}

func acceptOnly(valid string) stubVerifier {
	return stubVerifier{verifyFn: func(token string) (domain.Identity, error) {
		if token != valid {
			return domain.Identity{}, domain.ErrTokenInvalidSignature
		}
		return domain.Identity{UserID: "u1", Role: domain.RoleAdmin}, nil
	}}
}

func runAuth(t *testing.T, header string, verifier stubVerifier, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, Auth(verifier)(next)(c)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	called := false
	rec, err := runAuth(t, "Bearer good", acceptOnly("good"), func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.UserID != "u1" || id.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	_, err := runAuth(t, "bearer good", acceptOnly("good"), func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("expected lowercase scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrUnauthenticated},
		{"wrong scheme", "Token good", domain.ErrUnauthenticated},
		{"bad token", "Bearer forged", domain.ErrTokenInvalidSignature},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runAuth(t, tc.header, acceptOnly("good"), func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredTokenKeepsKind(t *testing.T) {
	verifier := stubVerifier{verifyFn: func(string) (domain.Identity, error) {
		return domain.Identity{}, domain.ErrTokenExpired
	}}

	_, err := runAuth(t, "Bearer old", verifier, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
