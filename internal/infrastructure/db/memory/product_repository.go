package memory

import (
	"context"
	"sync"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products []*domain.Product // insertion order
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	stored.ID = newID()
	r.products = append(r.products, &stored)

	out := stored
	return &out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrProductNotFound
	}
	out := *r.products[i]
	return &out, nil
}

func (r *ProductRepository) Find(_ context.Context, q query.ProductQuery) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if q.Filter.Matches(p) {
			clone := *p
			matched = append(matched, &clone)
		}
	}
	sortRecords(matched, q.Sort, func(a, b *domain.Product, field string) bool {
		if field == "price" {
			return a.Price < b.Price
		}
		return a.Name < b.Name
	})
	return window(matched, q.Page), nil
}

func (r *ProductRepository) Replace(_ context.Context, id string, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrProductNotFound
	}
	cur := r.products[i]
	cur.Name = p.Name
	cur.Category = p.Category
	cur.Price = p.Price
	cur.UpdatedAt = p.UpdatedAt

	out := *cur
	return &out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *ProductRepository) indexOf(id string) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
