package ports

import (
	"context"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Find applies filter, then sort, then pagination.
	Find(ctx context.Context, q query.ProductQuery) ([]*domain.Product, error)
	// Replace overwrites name, category, price and updated_at of an existing product.
	Replace(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
