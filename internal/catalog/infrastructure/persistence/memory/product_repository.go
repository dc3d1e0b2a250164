// Package memory implements the catalog repository on an in-memory
// product table. It is the reference store for tests and for running
// the storefront without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/wyfcoding/shopping/internal/catalog/domain"
)

type productRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
}

// NewProductRepository builds a repository from injected seed data.
// The seed is copied so the caller keeps no handle on internal state.
func NewProductRepository(seed []*domain.Product) domain.ProductRepository {
	products := make([]*domain.Product, 0, len(seed))
	for _, p := range seed {
		cp := *p
		products = append(products, &cp)
	}
	return &productRepository{products: products}
}

func (r *productRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyAll(), nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p := r.find(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0)
	for _, p := range r.products {
		if p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *productRepository) Search(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	r.mu.RLock()
	filtered := r.copyAll()
	r.mu.RUnlock()

	if filter.Category != "" {
		filtered = keep(filtered, func(p *domain.Product) bool {
			return p.Category == filter.Category
		})
	}
	if filter.MinPrice != nil {
		filtered = keep(filtered, func(p *domain.Product) bool {
			return p.Price.GreaterThanOrEqual(*filter.MinPrice)
		})
	}
	if filter.MaxPrice != nil {
		filtered = keep(filtered, func(p *domain.Product) bool {
			return p.Price.LessThanOrEqual(*filter.MaxPrice)
		})
	}
	if filter.SearchTerm != "" {
		term := strings.ToLower(filter.SearchTerm)
		filtered = keep(filtered, func(p *domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term)
		})
	}

	if filter.SortBy != "" {
		desc := filter.SortOrder == domain.SortDesc
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compare(filtered[i], filtered[j], filter.SortBy)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return filtered, nil
}

func (r *productRepository) ReserveStock(ctx context.Context, id uint, qty int) error {
	if qty == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(id)
	if p == nil || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *productRepository) ReleaseStock(ctx context.Context, id uint, qty int) error {
	if qty == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.find(id); p != nil {
		p.Stock += qty
	}
	return nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		var max uint
		for _, p := range r.products {
			if p.ID > max {
				max = p.ID
			}
		}
		product.ID = max + 1
	}

	if existing := r.find(product.ID); existing != nil {
		*existing = *product
		return nil
	}

	cp := *product
	r.products = append(r.products, &cp)
	return nil
}

// find returns the live record, callers hold the lock.
func (r *productRepository) find(id uint) *domain.Product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *productRepository) copyAll() []*domain.Product {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func keep(in []*domain.Product, pred func(*domain.Product) bool) []*domain.Product {
	out := in[:0]
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func compare(a, b *domain.Product, field domain.SortField) int {
	switch field {
	case domain.SortByPrice:
		return a.Price.Cmp(b.Price)
	case domain.SortByRating:
		switch {
		case a.Rating < b.Rating:
			return -1
		case a.Rating > b.Rating:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.Name, b.Name)
	}
}
