// Package application exposes the order use cases: checkout, order
// queries, status transitions and customer analytics.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	cartapp "github.com/wyfcoding/shopping/internal/cart/application"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
)

type OrderApplicationService struct {
	repo      domain.OrderRepository
	carts     *cartapp.CartApplicationService
	publisher domain.EventPublisher
	topic     string
}

func NewOrderApplicationService(
	repo domain.OrderRepository,
	carts *cartapp.CartApplicationService,
	publisher domain.EventPublisher,
	topic string,
) *OrderApplicationService {
	return &OrderApplicationService{
		repo:      repo,
		carts:     carts,
		publisher: publisher,
		topic:     topic,
	}
}

// CreateOrder snapshots the customer's cart into an immutable order.
// Totals are frozen from the cart summary at this instant. The cart
// is cleared only after the order has been stored, so a failed
// checkout never empties the cart.
func (s *OrderApplicationService) CreateOrder(ctx context.Context, customerID string, address domain.Address, payment domain.PaymentMethod) (*domain.Order, error) {
	summary, err := s.carts.Summary(ctx, customerID)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrderFromCart(customerID, summary, address, payment)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, customerID); err != nil {
		// The order exists; an unexpired cart is the lesser wrong.
		logger.Warn(ctx, "failed to clear cart after checkout",
			"order_id", order.OrderID,
			"customer_id", customerID,
			"error", err,
		)
	}

	s.publish(ctx, order.OrderID, domain.OrderCreatedEvent{
		OrderID:    order.OrderID,
		CustomerID: customerID,
		Total:      order.Total,
		ItemCount:  len(order.Items),
		Timestamp:  time.Now(),
	})

	logger.Info(ctx, "order created",
		"order_id", order.OrderID,
		"customer_id", customerID,
		"total", order.Total,
	)
	return order, nil
}

// GetOrders returns the customer's history, newest first.
func (s *OrderApplicationService) GetOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// GetOrderByID returns (nil, nil) when the order does not exist.
func (s *OrderApplicationService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.Get(ctx, orderID)
}

// UpdateOrderStatus performs an unconstrained transition and bumps
// the updated timestamp. Only cancellation carries a lifecycle guard.
func (s *OrderApplicationService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status) error {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}

	oldStatus := order.Status
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.publish(ctx, orderID, domain.OrderStatusChangedEvent{
		OrderID:    orderID,
		CustomerID: order.CustomerID,
		OldStatus:  oldStatus,
		NewStatus:  status,
		Timestamp:  time.Now(),
	})
	return nil
}

// CancelOrder transitions to CANCELLED. It fails with
// ErrOrderNotFound for unknown ids and ErrAlreadyShipped once the
// order has shipped or been delivered; the order keeps its status.
func (s *OrderApplicationService) CancelOrder(ctx context.Context, orderID string) error {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	if !order.CanBeCancelled() {
		return domain.ErrAlreadyShipped
	}
	return s.UpdateOrderStatus(ctx, orderID, domain.StatusCancelled)
}

// OrdersByStatus filters the customer's history by status.
func (s *OrderApplicationService) OrdersByStatus(ctx context.Context, customerID string, status domain.Status) ([]*domain.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0)
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// TotalSpent sums the totals of all non-cancelled orders. Derived
// per call, never cached.
func (s *OrderApplicationService) TotalSpent(ctx context.Context, customerID string) (decimal.Decimal, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range orders {
		if o.Status != domain.StatusCancelled {
			total = total.Add(o.Total)
		}
	}
	return total, nil
}

// OrderCount counts every order of the customer, cancelled included.
func (s *OrderApplicationService) OrderCount(ctx context.Context, customerID string) (int, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

// RecentOrders returns at most limit orders, newest first.
func (s *OrderApplicationService) RecentOrders(ctx context.Context, customerID string, limit int) ([]*domain.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *OrderApplicationService) publish(ctx context.Context, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, s.topic, key, event); err != nil {
		// Event delivery is best effort; the order itself is stored.
		logger.Warn(ctx, "failed to publish order event", "key", key, "error", err)
	}
}

// IsNotFound reports whether err is the unknown-order error.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrOrderNotFound)
}
