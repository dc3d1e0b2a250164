package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	orderapp "github.com/wyfcoding/shopping/internal/order/application"
	orderdomain "github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
)

const (
	msgEmptyCart          = "Carrinho vazio"
	msgCreateOrderFailed  = "Erro ao criar pedido"
	msgLoadOrdersFailed   = "Erro ao carregar pedidos"
	msgLoadOrderFailed    = "Erro ao carregar pedido"
	msgOrderNotFound      = "Pedido não encontrado"
	msgUpdateStatusFailed = "Erro ao atualizar status do pedido"
	msgAlreadyShipped     = "Não é possível cancelar pedido já enviado"
)

// OrderViewModel orchestrates checkout and order history for one
// customer session.
type OrderViewModel struct {
	viewState
	orders     *orderapp.OrderApplicationService
	customerID string
	metrics    *metrics.Metrics
}

// OrderViewModelOption customizes construction.
type OrderViewModelOption func(*OrderViewModel)

// WithOrderLatency sets the artificial delay emulating a remote API.
func WithOrderLatency(d time.Duration) OrderViewModelOption {
	return func(vm *OrderViewModel) { vm.latency = d }
}

// WithOrderMetrics attaches the Prometheus counters.
func WithOrderMetrics(m *metrics.Metrics) OrderViewModelOption {
	return func(vm *OrderViewModel) { vm.metrics = m }
}

func NewOrderViewModel(orders *orderapp.OrderApplicationService, customerID string, opts ...OrderViewModelOption) *OrderViewModel {
	vm := &OrderViewModel{orders: orders, customerID: customerID}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// CreateOrder checks the customer's cart out. On an empty cart it
// returns nil with "Carrinho vazio" stored and the cart untouched.
func (vm *OrderViewModel) CreateOrder(ctx context.Context, address orderdomain.Address, payment orderdomain.PaymentMethod) *orderdomain.Order {
	vm.begin()
	defer vm.end()
	vm.simulateLatency(ctx)

	order, err := vm.orders.CreateOrder(ctx, vm.customerID, address, payment)
	if err != nil {
		if vm.metrics != nil {
			vm.metrics.CheckoutFailedTotal.Inc()
		}
		if errors.Is(err, orderdomain.ErrEmptyCart) {
			vm.setErr(msgEmptyCart)
		} else {
			logger.Error(ctx, "checkout failed", "customer_id", vm.customerID, "error", err)
			vm.setErr(msgCreateOrderFailed)
		}
		return nil
	}

	if vm.metrics != nil {
		vm.metrics.OrdersCreatedTotal.Inc()
	}
	return order
}

// Orders returns the customer's history, newest first.
func (vm *OrderViewModel) Orders(ctx context.Context) []*orderdomain.Order {
	vm.begin()
	defer vm.end()
	vm.simulateLatency(ctx)

	orders, err := vm.orders.GetOrders(ctx, vm.customerID)
	if err != nil {
		logger.Error(ctx, "failed to load orders", "customer_id", vm.customerID, "error", err)
		vm.setErr(msgLoadOrdersFailed)
		return nil
	}
	return orders
}

// OrderByID returns nil for unknown ids without setting an error.
func (vm *OrderViewModel) OrderByID(ctx context.Context, orderID string) *orderdomain.Order {
	vm.begin()
	defer vm.end()
	vm.simulateLatency(ctx)

	order, err := vm.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		logger.Error(ctx, "failed to load order", "order_id", orderID, "error", err)
		vm.setErr(msgLoadOrderFailed)
		return nil
	}
	return order
}

// UpdateOrderStatus performs an unconstrained transition.
func (vm *OrderViewModel) UpdateOrderStatus(ctx context.Context, orderID string, status orderdomain.Status) bool {
	vm.begin()
	defer vm.end()
	vm.simulateLatency(ctx)

	err := vm.orders.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if orderapp.IsNotFound(err) {
			vm.setErr(msgOrderNotFound)
		} else {
			logger.Error(ctx, "failed to update order status", "order_id", orderID, "error", err)
			vm.setErr(msgUpdateStatusFailed)
		}
		return false
	}
	return true
}

// CancelOrder transitions to CANCELLED. Shipped and delivered orders
// refuse cancellation and keep their status.
func (vm *OrderViewModel) CancelOrder(ctx context.Context, orderID string) bool {
	vm.ClearErr()

	err := vm.orders.CancelOrder(ctx, orderID)
	if err != nil {
		switch {
		case orderapp.IsNotFound(err):
			vm.setErr(msgOrderNotFound)
		case errors.Is(err, orderdomain.ErrAlreadyShipped):
			vm.setErr(msgAlreadyShipped)
		default:
			logger.Error(ctx, "failed to cancel order", "order_id", orderID, "error", err)
			vm.setErr(msgUpdateStatusFailed)
		}
		return false
	}

	if vm.metrics != nil {
		vm.metrics.OrdersCancelledTotal.Inc()
	}
	return true
}

// OrdersByStatus filters the history by status.
func (vm *OrderViewModel) OrdersByStatus(ctx context.Context, status orderdomain.Status) []*orderdomain.Order {
	orders, err := vm.orders.OrdersByStatus(ctx, vm.customerID, status)
	if err != nil {
		logger.Error(ctx, "failed to filter orders", "error", err)
		return nil
	}
	return orders
}

// TotalSpent sums every non-cancelled order total.
func (vm *OrderViewModel) TotalSpent(ctx context.Context) decimal.Decimal {
	total, err := vm.orders.TotalSpent(ctx, vm.customerID)
	if err != nil {
		logger.Error(ctx, "failed to compute total spent", "error", err)
		return decimal.Zero
	}
	return total
}

func (vm *OrderViewModel) OrderCount(ctx context.Context) int {
	count, err := vm.orders.OrderCount(ctx, vm.customerID)
	if err != nil {
		logger.Error(ctx, "failed to count orders", "error", err)
		return 0
	}
	return count
}

// RecentOrders returns at most limit orders, newest first.
func (vm *OrderViewModel) RecentOrders(ctx context.Context, limit int) []*orderdomain.Order {
	orders, err := vm.orders.RecentOrders(ctx, vm.customerID, limit)
	if err != nil {
		logger.Error(ctx, "failed to load recent orders", "error", err)
		return nil
	}
	return orders
}

// CanCancelOrder mirrors the domain guard for UI buttons.
func (vm *OrderViewModel) CanCancelOrder(order *orderdomain.Order) bool {
	return order != nil && order.CanBeCancelled()
}

// FormatOrderDate renders a timestamp as dd/mm/yyyy.
func (vm *OrderViewModel) FormatOrderDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatOrderStatus maps a status to its storefront label.
func (vm *OrderViewModel) FormatOrderStatus(status orderdomain.Status) string {
	switch status {
	case orderdomain.StatusPending:
		return "Pendente"
	case orderdomain.StatusProcessing:
		return "Processando"
	case orderdomain.StatusShipped:
		return "Enviado"
	case orderdomain.StatusDelivered:
		return "Entregue"
	case orderdomain.StatusCancelled:
		return "Cancelado"
	}
	return string(status)
}

// StatusColor maps a status to its UI color.
func (vm *OrderViewModel) StatusColor(status orderdomain.Status) string {
	switch status {
	case orderdomain.StatusPending:
		return "#FF9500"
	case orderdomain.StatusProcessing:
		return "#007AFF"
	case orderdomain.StatusShipped:
		return "#34C759"
	case orderdomain.StatusDelivered:
		return "#30D158"
	case orderdomain.StatusCancelled:
		return "#FF3B30"
	}
	return ""
}

// EstimatedDelivery projects the delivery date: three days for
// free-shipping orders, seven otherwise.
func (vm *OrderViewModel) EstimatedDelivery(order *orderdomain.Order) time.Time {
	days := 7
	if order.Shipping.IsZero() {
		days = 3
	}
	return order.CreatedAt.AddDate(0, 0, days)
}
