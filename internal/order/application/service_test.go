package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/wyfcoding/shopping/internal/cart/application"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	cartmem "github.com/wyfcoding/shopping/internal/cart/infrastructure/persistence/memory"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/internal/order/infrastructure/messaging"
	ordermem "github.com/wyfcoding/shopping/internal/order/infrastructure/persistence/memory"
)

const topic = "shopping.orders"

func newFixture(t *testing.T) (*OrderApplicationService, *cartapp.CartApplicationService, *messaging.MemoryPublisher) {
	t.Helper()
	carts := cartapp.NewCartApplicationService(cartmem.NewCartRepository(), cartdomain.DefaultPricing())
	publisher := messaging.NewMemoryPublisher()
	orders := NewOrderApplicationService(ordermem.NewOrderRepository(), carts, publisher, topic)
	return orders, carts, publisher
}

func fillCart(t *testing.T, carts *cartapp.CartApplicationService, userID string) {
	t.Helper()
	product := &catalogdomain.Product{ID: 1, Name: "Tênis", Price: decimal.NewFromInt(250), Stock: 10}
	require.NoError(t, carts.AddItem(context.Background(), userID, product, 1))
}

func testAddress() domain.Address {
	return domain.Address{Street: "Av. Paulista, 1000", City: "São Paulo", State: "SP", ZipCode: "01310-100", Country: "BR"}
}

func testPayment() domain.PaymentMethod {
	return domain.PaymentMethod{Type: domain.PaymentPix, Details: "chave@email.com"}
}

func TestCreateOrderSnapshotsCartAndClearsIt(t *testing.T) {
	orders, carts, publisher := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, "u1")

	order, err := orders.CreateOrder(ctx, "u1", testAddress(), testPayment())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "u1", order.CustomerID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Tênis", order.Items[0].ProductName)

	// Totals are frozen at checkout: 250 + 25 shipping + 20 tax.
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", order.Subtotal)
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(25)), "shipping %s", order.Shipping)
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(20)), "tax %s", order.Tax)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(295)), "total %s", order.Total)

	// The cart is emptied only after the order exists.
	summary, err := carts.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, topic, events[0].Topic)
	assert.Equal(t, order.OrderID, events[0].Key)
	created, ok := events[0].Event.(domain.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, order.OrderID, created.OrderID)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	orders, _, publisher := newFixture(t)

	order, err := orders.CreateOrder(context.Background(), "u1", testAddress(), testPayment())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Nil(t, order)
	assert.Empty(t, publisher.Events())
}

func TestCreateOrderKeepsCartWhenSaveFails(t *testing.T) {
	carts := cartapp.NewCartApplicationService(cartmem.NewCartRepository(), cartdomain.DefaultPricing())
	orders := NewOrderApplicationService(failingOrderRepo{}, carts, messaging.NewMemoryPublisher(), topic)
	ctx := context.Background()
	fillCart(t, carts, "u1")

	_, err := orders.CreateOrder(ctx, "u1", testAddress(), testPayment())
	require.Error(t, err)

	summary, err := carts.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	orders, _, _ := newFixture(t)

	order, err := orders.GetOrderByID(context.Background(), "ORD-unknown")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestUpdateOrderStatus(t *testing.T) {
	orders, carts, publisher := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, "u1")

	order, err := orders.CreateOrder(ctx, "u1", testAddress(), testPayment())
	require.NoError(t, err)

	require.NoError(t, orders.UpdateOrderStatus(ctx, order.OrderID, domain.StatusShipped))

	got, err := orders.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)

	err = orders.UpdateOrderStatus(ctx, "ORD-unknown", domain.StatusShipped)
	assert.True(t, IsNotFound(err))

	events := publisher.Events()
	require.Len(t, events, 2)
	changed, ok := events[1].Event.(domain.OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.StatusShipped, changed.NewStatus)
}

func TestCancelOrder(t *testing.T) {
	orders, carts, _ := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, "u1")

	order, err := orders.CreateOrder(ctx, "u1", testAddress(), testPayment())
	require.NoError(t, err)

	require.NoError(t, orders.CancelOrder(ctx, order.OrderID))
	got, err := orders.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestCancelOrderAfterShipmentFails(t *testing.T) {
	orders, carts, _ := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, "u1")

	order, err := orders.CreateOrder(ctx, "u1", testAddress(), testPayment())
	require.NoError(t, err)
	require.NoError(t, orders.UpdateOrderStatus(ctx, order.OrderID, domain.StatusShipped))

	err = orders.CancelOrder(ctx, order.OrderID)
	assert.ErrorIs(t, err, domain.ErrAlreadyShipped)

	got, err := orders.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)
}

func TestCancelOrderNotFound(t *testing.T) {
	orders, _, _ := newFixture(t)

	err := orders.CancelOrder(context.Background(), "ORD-unknown")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderAnalytics(t *testing.T) {
	orders, carts, _ := newFixture(t)
	ctx := context.Background()

	var created []*domain.Order
	for i := 0; i < 3; i++ {
		fillCart(t, carts, "u1")
		order, err := orders.CreateOrder(ctx, "u1", testAddress(), testPayment())
		require.NoError(t, err)
		created = append(created, order)
		time.Sleep(2 * time.Millisecond)
	}
	require.NoError(t, orders.CancelOrder(ctx, created[0].OrderID))

	// Cancelled orders count but do not contribute to spend.
	count, err := orders.OrderCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	spent, err := orders.TotalSpent(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, spent.Equal(decimal.NewFromInt(590)), "spent %s", spent)

	pending, err := orders.OrdersByStatus(ctx, "u1", domain.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	recent, err := orders.RecentOrders(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, created[2].OrderID, recent[0].OrderID)
	assert.Equal(t, created[1].OrderID, recent[1].OrderID)
}

type failingOrderRepo struct{}

func (failingOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	return errors.New("storage unavailable")
}

func (failingOrderRepo) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return nil, nil
}

func (failingOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return nil, nil
}

func (failingOrderRepo) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	return domain.ErrOrderNotFound
}
