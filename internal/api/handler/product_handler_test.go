package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

type stubProductService struct {
	findFn   func(ctx context.Context, q query.ProductQuery) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	createFn func(ctx context.Context, in ports.ProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) Find(ctx context.Context, q query.ProductQuery) ([]*domain.Product, error) {
	return s.findFn(ctx, q)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_ListBuildsQuery(t *testing.T) {
	e := newTestEcho()
	var got query.ProductQuery
	h := NewProductHandler(&stubProductService{
		findFn: func(_ context.Context, q query.ProductQuery) ([]*domain.Product, error) {
			got = q
			return []*domain.Product{{ID: "1", Name: "Cola", Category: "Beverages", Price: 1.5}}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodGet, "/api/products?category=Beverages&price_band=1-2&page=2&limit=5", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beverages", got.Filter.Category)
	require.NotNil(t, got.Filter.Price)
	assert.Equal(t, query.PriceRange{Min: 1, Max: 2}, *got.Filter.Price)
	require.NotNil(t, got.Page)
	assert.Equal(t, query.Page{Number: 2, Limit: 5}, *got.Page)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Cola", body[0]["name"])
}

func TestProductHandler_QueryErrorsNeverReachService(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{
		findFn: func(context.Context, query.ProductQuery) ([]*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	cases := []struct {
		name   string
		target string
		call   echo.HandlerFunc
		want   string
	}{
		{"bad band", "/api/products?price_band=cheap", h.List, "Invalid price_band parameter"},
		{"missing name", "/api/products/search", h.Search, "Missing search parameter: name"},
		{"bogus sort", "/api/products/sort?sortBy=bogus", h.Sort, "Invalid sortBy parameter"},
		{"bogus order", "/api/products/sort?sortBy=price&order=up", h.Sort, "Invalid order parameter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := jsonContext(e, http.MethodGet, tc.target, "")
			err := tc.call(c)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tc.want, vErr.Message)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{
		createFn: func(_ context.Context, in ports.ProductInput) (*domain.Product, error) {
			return &domain.Product{ID: "p1", Name: in.Name, Category: in.Category, Price: in.Price}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/api/products", `{"name":"Water","category":"Beverages","price":0}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"p1"`)
}

func TestProductHandler_CreateValidation(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{
		createFn: func(context.Context, ports.ProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	cases := map[string]string{
		"missing price":  `{"name":"Water","category":"Beverages"}`,
		"negative price": `{"name":"Water","category":"Beverages","price":-1}`,
		"missing name":   `{"category":"Beverages","price":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonContext(e, http.MethodPost, "/api/products", body)
			var vErr *domain.ValidationError
			assert.True(t, errors.As(h.Create(c), &vErr))
		})
	}
}

func TestProductHandler_UpdateNotFound(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{
		updateFn: func(_ context.Context, id string, _ ports.ProductInput) (*domain.Product, error) {
			assert.Equal(t, "missing", id)
			return nil, domain.ErrProductNotFound
		},
	})

	c, _ := jsonContext(e, http.MethodPut, "/api/products/missing", `{"name":"A","category":"B","price":1}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	assert.ErrorIs(t, h.Update(c), domain.ErrProductNotFound)
}

func TestProductHandler_Delete(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{
		deleteFn: func(context.Context, string) error { return nil },
	})

	c, rec := jsonContext(e, http.MethodDelete, "/api/products/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	require.NoError(t, h.Delete(c))
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())
}
