package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_DeniesAfterLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(NewMemoryStore(2, time.Hour)))
	e.GET("/api/products", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.1.1.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do("/api/products"); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := do("/api/products"); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}
	if code := do("/api/products"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}
	if code := do("/health"); code != http.StatusOK {
		t.Fatalf("health probe must not be limited, got %d", code)
	}
}
