// Package memory keeps the order history in an in-memory slice,
// newest lookups served from copies.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wyfcoding/shopping/internal/order/domain"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders []*domain.Order
}

func NewOrderRepository() domain.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := cloneOrder(order)
	r.orders = append(r.orders, cp)
	return nil
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderID == orderID {
			return cloneOrder(o), nil
		}
	}
	return nil, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderID == orderID {
			o.SetStatus(status)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.Line(nil), o.Items...)
	return &cp
}
