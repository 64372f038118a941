package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.NewValidationError("Invalid sortBy parameter"), http.StatusBadRequest, "Invalid sortBy parameter"},
		{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid username or password"},
		{fmt.Errorf("register: %w", domain.ErrUserExists), http.StatusBadRequest, "Username already exists"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "Invalid or expired token"},
		{domain.ErrTokenInvalidSignature, http.StatusUnauthorized, "Invalid or expired token"},
		{domain.ErrForbidden, http.StatusForbidden, "Access forbidden"},
		{fmt.Errorf("get user: %w", domain.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{domain.ErrProductNotFound, http.StatusNotFound, "Product not found"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "slow down"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			want := `{"message":"` + tc.msg + `"}` + "\n"
			if rec.Body.String() != want {
				t.Fatalf("body = %q, want %q", rec.Body.String(), want)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %q", rec.Body.String())
	}
}
