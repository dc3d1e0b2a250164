// Package memory keeps carts in a per-user map. It is the reference
// store for tests and for running without Redis.
package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/shopping/internal/cart/domain"
)

type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepository() domain.CartRepository {
	return &cartRepository{carts: make(map[string]*domain.Cart)}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}

	cp := *cart
	cp.Lines = append([]domain.Item(nil), cart.Lines...)
	return &cp, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *cart
	cp.Lines = append([]domain.Item(nil), cart.Lines...)
	r.carts[cart.UserID] = &cp
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
