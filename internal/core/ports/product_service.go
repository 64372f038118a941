package ports

import (
	"context"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name     string
	Category string
	Price    float64
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	Find(ctx context.Context, q query.ProductQuery) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
